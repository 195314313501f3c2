package api

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/query"
)

// parsePage reads pageNo/pageSize query parameters and converts them into a
// limit/offset pair. Absent parameters yield an unbounded page.
func parsePage(r *http.Request) query.Page {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	return query.Paginate(pageNo, pageSize)
}

// parseListScopes validates the filter and sort query parameters against the
// endpoint's whitelists and returns the resulting query scopes.
func parseListScopes(r *http.Request, filterSpec query.FilterSpec, sortSpec query.SortSpec) ([]func(*gorm.DB) *gorm.DB, error) {
	conditions, err := query.ParseFilter(r.URL.Query().Get("filter"), filterSpec)
	if err != nil {
		return nil, err
	}
	orders, err := query.ParseSort(r.URL.Query().Get("sort"), sortSpec)
	if err != nil {
		return nil, err
	}
	return []func(*gorm.DB) *gorm.DB{query.Scope(conditions), query.OrderScope(orders)}, nil
}

// boolParam reads a boolean query flag; anything but "true" is false.
func boolParam(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}
