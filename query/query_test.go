package query

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prospectiq/dataops-backend/errs"
)

func TestPaginateClampsNegatives(t *testing.T) {
	cases := []struct {
		name             string
		pageNo, pageSize int
		limit, offset    int
	}{
		{"zero values", 0, 0, 0, 0},
		{"first page", 0, 25, 25, 0},
		{"third page", 2, 25, 25, 50},
		{"negative page number", -3, 25, 25, 0},
		{"negative page size", 1, -10, 0, 0},
		{"both negative", -1, -1, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := Paginate(tc.pageNo, tc.pageSize)
			if page.Limit != tc.limit || page.Offset != tc.offset {
				t.Errorf("Paginate(%d, %d) = {Limit: %d, Offset: %d}, want {Limit: %d, Offset: %d}",
					tc.pageNo, tc.pageSize, page.Limit, page.Offset, tc.limit, tc.offset)
			}
		})
	}
}

var testFilterSpec = FilterSpec{
	"name":      {Type: TypeString, Operators: []string{OpEqual, OpLike}},
	"status":    {Type: TypeString, Operators: []string{OpEqual, OpIn}},
	"createdBy": {Type: TypeString, Operators: []string{OpEqual}, Column: "created_by"},
	"tags":      {Type: TypeArray, Operators: []string{OpEqual}},
	"dueDate":   {Type: TypeString, Operators: []string{OpBetween, OpIsNull}, Column: "due_date"},
}

func TestParseFilterEmptyIsValid(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		conditions, err := ParseFilter(raw, testFilterSpec)
		if err != nil {
			t.Fatalf("ParseFilter(%q) returned error: %v", raw, err)
		}
		if len(conditions) != 0 {
			t.Fatalf("ParseFilter(%q) returned %d conditions, want 0", raw, len(conditions))
		}
	}
}

func TestParseFilterValid(t *testing.T) {
	raw := `{"status":{"operator":"in","value":["Active","On Hold"]},"name":{"operator":"like","value":"acme"}}`

	conditions, err := ParseFilter(raw, testFilterSpec)
	if err != nil {
		t.Fatalf("ParseFilter returned error: %v", err)
	}
	if len(conditions) != 2 {
		t.Fatalf("got %d conditions, want 2", len(conditions))
	}

	// Conditions come back sorted by field name regardless of input order.
	if conditions[0].Field != "name" || conditions[1].Field != "status" {
		t.Errorf("conditions not sorted by field: got %q, %q", conditions[0].Field, conditions[1].Field)
	}
	if conditions[0].Operator != OpLike {
		t.Errorf("name operator = %q, want %q", conditions[0].Operator, OpLike)
	}
}

func TestParseFilterColumnMapping(t *testing.T) {
	conditions, err := ParseFilter(`{"createdBy":{"operator":"=","value":"user-1"}}`, testFilterSpec)
	if err != nil {
		t.Fatalf("ParseFilter returned error: %v", err)
	}
	if conditions[0].Column != "created_by" {
		t.Errorf("column = %q, want created_by", conditions[0].Column)
	}
}

func TestParseFilterRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown key", `{"secret":{"operator":"=","value":"x"}}`},
		{"operator not whitelisted", `{"createdBy":{"operator":"like","value":"x"}}`},
		{"between without array", `{"dueDate":{"operator":"between","value":"2026-01-01"}}`},
		{"between wrong arity", `{"dueDate":{"operator":"between","value":["2026-01-01"]}}`},
		{"isNull without boolean", `{"dueDate":{"operator":"isNull","value":"yes"}}`},
		{"in without array", `{"status":{"operator":"in","value":"Active"}}`},
		{"array type scalar value", `{"tags":{"operator":"=","value":"solo"}}`},
		{"not json", `status=Active`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilter(tc.raw, testFilterSpec)
			if err == nil {
				t.Fatalf("ParseFilter(%q) succeeded, want error", tc.raw)
			}
			var apiErr *errs.ApiErr
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("ParseFilter(%q) error = %v, want 400", tc.raw, err)
			}
		})
	}
}
