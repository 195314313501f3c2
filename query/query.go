package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prospectiq/dataops-backend/errs"
	"gorm.io/gorm"
)

// Page carries the limit/offset pair handed to the repository layer.
type Page struct {
	Limit  int
	Offset int
}

// Paginate converts a (page number, page size) pair into limit/offset.
// Negative inputs clamp to zero instead of reaching the query layer.
func Paginate(pageNo, pageSize int) Page {
	if pageNo < 0 {
		pageNo = 0
	}
	if pageSize < 0 {
		pageSize = 0
	}
	return Page{
		Limit:  pageSize,
		Offset: pageNo * pageSize,
	}
}

// Scope applies the page to a gorm query. A zero limit means unbounded.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// Column types a filterable field can declare.
const (
	TypeString = "string"
	TypeArray  = "array"
)

// Filter operators.
const (
	OpEqual    = "="
	OpNotEqual = "!="
	OpLess     = "<"
	OpGreater  = ">"
	OpBetween  = "between"
	OpIn       = "in"
	OpLike     = "like"
	OpIsNull   = "isNull"
)

// ColumnSpec declares how one logical field may be filtered. Column is the
// physical column name; when empty the field name is used as-is.
type ColumnSpec struct {
	Type      string
	Operators []string
	Column    string
}

// FilterSpec is the per-endpoint whitelist of filterable fields.
type FilterSpec map[string]ColumnSpec

// Condition is one validated filter clause.
type Condition struct {
	Field    string
	Column   string
	Operator string
	Value    any
}

type rawCondition struct {
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// ParseFilter validates a JSON-encoded filter object against the whitelist and
// returns the conditions in a stable (field-sorted) order. An empty or absent
// filter is always valid and yields no conditions.
func ParseFilter(raw string, spec FilterSpec) ([]Condition, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var filter map[string]rawCondition
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, errs.NewInvalidJSONError("filter", err)
	}

	conditions := make([]Condition, 0, len(filter))
	for field, rc := range filter {
		col, ok := spec[field]
		if !ok {
			return nil, errs.BadRequest(fmt.Sprintf("filter key %q is not filterable", field))
		}
		if !contains(col.Operators, rc.Operator) {
			return nil, errs.BadRequest(fmt.Sprintf("operator %q is not allowed for filter key %q", rc.Operator, field))
		}
		if err := checkValue(field, col.Type, rc.Operator, rc.Value); err != nil {
			return nil, err
		}
		column := col.Column
		if column == "" {
			column = field
		}
		conditions = append(conditions, Condition{
			Field:    field,
			Column:   column,
			Operator: rc.Operator,
			Value:    rc.Value,
		})
	}

	// Map iteration order is random; keep the translated clauses deterministic.
	for i := 1; i < len(conditions); i++ {
		for j := i; j > 0 && conditions[j-1].Field > conditions[j].Field; j-- {
			conditions[j-1], conditions[j] = conditions[j], conditions[j-1]
		}
	}
	return conditions, nil
}

func checkValue(field, colType, operator string, value any) error {
	switch operator {
	case OpIsNull:
		if _, ok := value.(bool); !ok {
			return errs.BadRequest(fmt.Sprintf("filter key %q: isNull expects a boolean value", field))
		}
	case OpBetween:
		vals, ok := value.([]any)
		if !ok || len(vals) != 2 {
			return errs.BadRequest(fmt.Sprintf("filter key %q: between expects an array of two values", field))
		}
	case OpIn:
		if _, ok := value.([]any); !ok {
			return errs.BadRequest(fmt.Sprintf("filter key %q: in expects an array value", field))
		}
	default:
		if colType == TypeArray {
			if _, ok := value.([]any); !ok {
				return errs.BadRequest(fmt.Sprintf("filter key %q expects an array value", field))
			}
		}
	}
	return nil
}

// Scope translates validated conditions into a gorm scope.
func Scope(conditions []Condition) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conditions {
			switch c.Operator {
			case OpEqual:
				db = db.Where(c.Column+" = ?", c.Value)
			case OpNotEqual:
				db = db.Where(c.Column+" <> ?", c.Value)
			case OpLess:
				db = db.Where(c.Column+" < ?", c.Value)
			case OpGreater:
				db = db.Where(c.Column+" > ?", c.Value)
			case OpBetween:
				vals := c.Value.([]any)
				db = db.Where(c.Column+" BETWEEN ? AND ?", vals[0], vals[1])
			case OpIn:
				db = db.Where(c.Column+" IN ?", c.Value)
			case OpLike:
				db = db.Where("LOWER("+c.Column+") LIKE ?", "%"+strings.ToLower(fmt.Sprint(c.Value))+"%")
			case OpIsNull:
				if c.Value.(bool) {
					db = db.Where(c.Column + " IS NULL")
				} else {
					db = db.Where(c.Column + " IS NOT NULL")
				}
			}
		}
		return db
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
