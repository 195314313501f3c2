package api

import (
	"context"
	"errors"
)

type keyType string

const (
	userIDKey      keyType = "userID"
	rolesKey       keyType = "roles"
	permissionsKey keyType = "permissions"
)

// ctxWithUser adds the authenticated user id, role set and permission grants
// to the context.
func ctxWithUser(ctx context.Context, userID string, roles, permissions []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, rolesKey, roles)
	return context.WithValue(ctx, permissionsKey, permissions)
}

// ctxGetUserID retrieves the authenticated user id from the context.
func ctxGetUserID(ctx context.Context) (string, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return "", errors.New("user id not found in context")
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", errors.New("user id in context is empty")
	}
	return userID, nil
}

// ctxGetRoles retrieves the authenticated user's roles from the context.
func ctxGetRoles(ctx context.Context) []string {
	value := ctx.Value(rolesKey)
	if value == nil {
		return nil
	}
	roles, ok := value.([]string)
	if !ok {
		return nil
	}
	return roles
}

// ctxGetPermissions retrieves the authenticated user's permission grants.
func ctxGetPermissions(ctx context.Context) []string {
	value := ctx.Value(permissionsKey)
	if value == nil {
		return nil
	}
	permissions, ok := value.([]string)
	if !ok {
		return nil
	}
	return permissions
}

// hasRole reports whether the context's role set contains role.
func hasRole(ctx context.Context, role string) bool {
	for _, r := range ctxGetRoles(ctx) {
		if r == role {
			return true
		}
	}
	return false
}
