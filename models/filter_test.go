package models

import "testing"

func predicateExprs(f TransactionFilter) []string {
	ps := f.Predicates()
	exprs := make([]string, len(ps))
	for i, p := range ps {
		exprs[i] = p.Expr
	}
	return exprs
}

func TestNormalizeDefaults(t *testing.T) {
	f := TransactionFilter{}.Normalize()
	if f.Limit != DefaultFilterLimit {
		t.Fatalf("expected default limit %d got %d", DefaultFilterLimit, f.Limit)
	}
	if f.Offset != 0 {
		t.Fatalf("expected offset 0 got %d", f.Offset)
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	f := TransactionFilter{Limit: -3, Offset: -7}.Normalize()
	if f.Limit != DefaultFilterLimit {
		t.Fatalf("non-positive limit should fall back to default, got %d", f.Limit)
	}
	if f.Offset != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d", f.Offset)
	}
}

func TestPredicatesDropEmptyFields(t *testing.T) {
	// Empty string means "no constraint", never "match empty".
	f := TransactionFilter{Category: "", Limit: 10}
	if ps := f.Predicates(); len(ps) != 0 {
		t.Fatalf("empty fields must compile to no predicates, got %v", predicateExprs(f))
	}
}

func TestPredicatesFull(t *testing.T) {
	f := TransactionFilter{
		Category:  "Groceries",
		Type:      "expense",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	}
	want := []string{"category = ?", "transaction_type = ?", "date >= ?", "date <= ?"}
	got := predicateExprs(f)
	if len(got) != len(want) {
		t.Fatalf("expected %d predicates got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("predicate %d: expected %q got %q", i, want[i], got[i])
		}
	}
	if arg := f.Predicates()[0].Args[0]; arg != "Groceries" {
		t.Fatalf("category arg: expected Groceries got %v", arg)
	}
}

func TestPredicatesPartial(t *testing.T) {
	f := TransactionFilter{StartDate: "2026-03-01"}
	got := predicateExprs(f)
	if len(got) != 1 || got[0] != "date >= ?" {
		t.Fatalf("expected only the start-date bound, got %v", got)
	}
}
