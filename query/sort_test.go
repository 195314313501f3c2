package query

import (
	"testing"
)

var testSortSpec = SortSpec{
	Columns:      []string{"name", "status", "created_at"},
	MultipleSort: true,
}

func TestParseSortEmptyIsValid(t *testing.T) {
	orders, err := ParseSort("", testSortSpec)
	if err != nil {
		t.Fatalf("ParseSort(\"\") returned error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("ParseSort(\"\") returned %d orders, want 0", len(orders))
	}
}

func TestParseSortPreservesKeyOrder(t *testing.T) {
	raw := `{"status":"desc","name":"asc","created_at":"desc"}`

	orders, err := ParseSort(raw, testSortSpec)
	if err != nil {
		t.Fatalf("ParseSort returned error: %v", err)
	}

	want := []Order{
		{Column: "status", Direction: "desc"},
		{Column: "name", Direction: "asc"},
		{Column: "created_at", Direction: "desc"},
	}
	if len(orders) != len(want) {
		t.Fatalf("got %d orders, want %d", len(orders), len(want))
	}
	for i := range want {
		if orders[i] != want[i] {
			t.Errorf("order[%d] = %+v, want %+v", i, orders[i], want[i])
		}
	}
}

func TestParseSortNormalizesDirection(t *testing.T) {
	orders, err := ParseSort(`{"name":"DESC"}`, testSortSpec)
	if err != nil {
		t.Fatalf("ParseSort returned error: %v", err)
	}
	if orders[0].Direction != "desc" {
		t.Errorf("direction = %q, want desc", orders[0].Direction)
	}
}

func TestParseSortRejections(t *testing.T) {
	single := SortSpec{Columns: []string{"name", "status"}, MultipleSort: false}

	cases := []struct {
		name string
		raw  string
		spec SortSpec
	}{
		{"unknown column", `{"secret":"asc"}`, testSortSpec},
		{"bad direction", `{"name":"upwards"}`, testSortSpec},
		{"non-string direction", `{"name":1}`, testSortSpec},
		{"not an object", `["name"]`, testSortSpec},
		{"multiple keys when single only", `{"name":"asc","status":"desc"}`, single},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSort(tc.raw, tc.spec); err == nil {
				t.Fatalf("ParseSort(%q) succeeded, want error", tc.raw)
			}
		})
	}
}
