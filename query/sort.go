package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prospectiq/dataops-backend/errs"
	"gorm.io/gorm"
)

// SortSpec is the per-endpoint whitelist of sortable columns. MultipleSort
// governs whether the caller may supply more than one sort key.
type SortSpec struct {
	Columns      []string
	MultipleSort bool
}

// Order is one validated sort clause.
type Order struct {
	Column    string
	Direction string
}

// ParseSort validates a JSON-encoded sort object ({"column": "asc"|"desc"})
// against the whitelist. Key order in the JSON document is preserved so that
// multi-column sorts apply in the order the caller wrote them.
func ParseSort(raw string, spec SortSpec) ([]Order, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, errs.NewInvalidJSONError("sort", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errs.BadRequest("sort must be a JSON object")
	}

	var orders []Order
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errs.NewInvalidJSONError("sort", err)
		}
		column := keyTok.(string)

		var direction string
		if err := dec.Decode(&direction); err != nil {
			return nil, errs.BadRequest(fmt.Sprintf("sort key %q: direction must be a string", column))
		}

		if !contains(spec.Columns, column) {
			return nil, errs.BadRequest(fmt.Sprintf("sort key %q is not sortable", column))
		}
		direction = strings.ToLower(direction)
		if direction != "asc" && direction != "desc" {
			return nil, errs.BadRequest(fmt.Sprintf("sort key %q: direction must be asc or desc", column))
		}

		orders = append(orders, Order{Column: column, Direction: direction})
	}
	if _, err := dec.Token(); err != nil {
		return nil, errs.NewInvalidJSONError("sort", err)
	}

	if len(orders) > 1 && !spec.MultipleSort {
		return nil, errs.BadRequest("multiple sort keys are not allowed for this resource")
	}
	return orders, nil
}

// OrderScope translates validated sort clauses into a gorm scope.
func OrderScope(orders []Order) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range orders {
			db = db.Order(o.Column + " " + o.Direction)
		}
		return db
	}
}
