package validate

// Permission sets looked up by CheckPermissions. A permission type names the
// full set of grants an endpoint requires.
var permissionSets = map[string][]string{
	"projectDelete": {"project.read", "project.delete"},
	"projectEdit":   {"project.read", "project.update"},
	"clientManage":  {"client.read", "client.create", "client.update"},
	"fileManage":    {"file.read", "file.create", "file.delete"},
}

// MissingKeys returns the subset of required keys absent from obj's own keys.
func MissingKeys(obj map[string]any, required []string) []string {
	missing := []string{}
	for _, key := range required {
		if _, ok := obj[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// StripNull returns a shallow copy of obj omitting keys whose value is nil.
// Keys holding empty strings, zeros or false are kept.
func StripNull(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		if value == nil {
			continue
		}
		out[key] = value
	}
	return out
}

// CheckPermissions reports whether every permission in the named set is
// present in granted. Unknown permission types never pass.
func CheckPermissions(granted []string, permissionType string) bool {
	required, ok := permissionSets[permissionType]
	if !ok {
		return false
	}
	grantedSet := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		grantedSet[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := grantedSet[p]; !ok {
			return false
		}
	}
	return true
}
