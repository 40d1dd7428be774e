package models

import "gorm.io/gorm"

// DefaultFilterLimit is the page size applied when the caller does not ask
// for one.
const DefaultFilterLimit = 50

// TransactionFilter is a request-scoped set of optional constraints for
// transaction reads. It is never persisted. An empty or absent field means
// "no constraint", not "match empty".
type TransactionFilter struct {
	Category  string `form:"category"`
	Type      string `form:"transaction_type"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// Predicate is a single conjunctive constraint ready to hand to the store.
type Predicate struct {
	Expr string
	Args []any
}

// Normalize fills pagination defaults and clamps out-of-range values.
// String fields are left as-is; Predicates already drops empties.
func (f TransactionFilter) Normalize() TransactionFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultFilterLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Predicates compiles the filter into its ordered predicate list: equality on
// category and kind, then the inclusive date window. Empty fields contribute
// nothing.
func (f TransactionFilter) Predicates() []Predicate {
	var ps []Predicate
	if f.Category != "" {
		ps = append(ps, Predicate{Expr: "category = ?", Args: []any{f.Category}})
	}
	if f.Type != "" {
		ps = append(ps, Predicate{Expr: "transaction_type = ?", Args: []any{f.Type}})
	}
	if f.StartDate != "" {
		ps = append(ps, Predicate{Expr: "date >= ?", Args: []any{f.StartDate}})
	}
	if f.EndDate != "" {
		ps = append(ps, Predicate{Expr: "date <= ?", Args: []any{f.EndDate}})
	}
	return ps
}

// Apply attaches the compiled predicates plus ordering and the pagination
// window to a query. Rows come back newest date first; ordering among equal
// dates is store-defined.
func (f TransactionFilter) Apply(q *gorm.DB) *gorm.DB {
	f = f.Normalize()
	for _, p := range f.Predicates() {
		q = q.Where(p.Expr, p.Args...)
	}
	q = q.Order("date desc").Limit(f.Limit)
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}
