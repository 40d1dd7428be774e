package stats

import (
	"math"
	"testing"
)

func TestSummarizeBasic(t *testing.T) {
	entries := []Entry{
		{Amount: 100, Type: "income"},
		{Amount: 40, Type: "expense"},
		{Amount: 10, Type: "expense"},
	}
	s := Summarize(entries)
	if s.TotalIncome != 100 {
		t.Fatalf("total_income: expected 100 got %v", s.TotalIncome)
	}
	if s.TotalExpenses != 50 {
		t.Fatalf("total_expenses: expected 50 got %v", s.TotalExpenses)
	}
	if s.NetBalance != 50 {
		t.Fatalf("net_balance: expected 50 got %v", s.NetBalance)
	}
	if s.TransactionCount != 3 {
		t.Fatalf("transaction_count: expected 3 got %d", s.TransactionCount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome != 0 || s.TotalExpenses != 0 || s.NetBalance != 0 || s.TransactionCount != 0 {
		t.Fatalf("expected all-zero summary for empty input, got %+v", s)
	}
	if got := ByCategory(nil); len(got) != 0 {
		t.Fatalf("expected empty per-category list for empty input, got %d groups", len(got))
	}
}

func TestSummarizeUnknownTypeCountsAsExpense(t *testing.T) {
	entries := []Entry{
		{Amount: 30, Type: "income"},
		{Amount: 5, Type: "transfer"}, // legacy/unexpected kind
	}
	s := Summarize(entries)
	if s.TotalExpenses != 5 {
		t.Fatalf("unknown kind should accumulate as expense, got %v", s.TotalExpenses)
	}
	if s.NetBalance != 25 {
		t.Fatalf("net_balance: expected 25 got %v", s.NetBalance)
	}
}

func TestNetBalanceIdentity(t *testing.T) {
	entries := []Entry{
		{Amount: 12.35, Type: "income"},
		{Amount: 7.10, Type: "expense"},
		{Amount: 0.55, Type: "expense"},
		{Amount: 99.99, Type: "income"},
	}
	s := Summarize(entries)
	if s.NetBalance != s.TotalIncome-s.TotalExpenses {
		t.Fatalf("net_balance %v != income %v - expenses %v", s.NetBalance, s.TotalIncome, s.TotalExpenses)
	}
}

func TestByCategoryGroupingAndOrder(t *testing.T) {
	entries := []Entry{
		{Category: "Food", Amount: 20, Type: "expense"},
		{Category: "Food", Amount: 30, Type: "expense"},
		{Category: "Transport", Amount: 15, Type: "expense"},
	}
	got := ByCategory(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups got %d", len(got))
	}
	if got[0].Category != "Food" || got[0].TotalAmount != 50 || got[0].TransactionCount != 2 {
		t.Fatalf("unexpected first group: %+v", got[0])
	}
	if got[1].Category != "Transport" || got[1].TotalAmount != 15 || got[1].TransactionCount != 1 {
		t.Fatalf("unexpected second group: %+v", got[1])
	}
}

func TestByCategoryStableTies(t *testing.T) {
	// Equal totals must preserve first-seen order.
	entries := []Entry{
		{Category: "B", Amount: 10, Type: "expense"},
		{Category: "A", Amount: 10, Type: "expense"},
		{Category: "C", Amount: 10, Type: "expense"},
	}
	got := ByCategory(entries)
	want := []string{"B", "A", "C"}
	for i, w := range want {
		if got[i].Category != w {
			t.Fatalf("tie order broken at %d: expected %s got %s", i, w, got[i].Category)
		}
	}
}

func TestByCategoryLastSeenTypeLabel(t *testing.T) {
	entries := []Entry{
		{Category: "Side", Amount: 100, Type: "income"},
		{Category: "Side", Amount: 20, Type: "expense"},
	}
	got := ByCategory(entries)
	if len(got) != 1 {
		t.Fatalf("expected 1 group got %d", len(got))
	}
	if got[0].TransactionType != "expense" {
		t.Fatalf("label should reflect the last-seen record, got %q", got[0].TransactionType)
	}
}

func TestByCategoryCaseSensitive(t *testing.T) {
	entries := []Entry{
		{Category: "food", Amount: 1, Type: "expense"},
		{Category: "Food", Amount: 2, Type: "expense"},
	}
	if got := ByCategory(entries); len(got) != 2 {
		t.Fatalf("grouping must be case-sensitive, got %d groups", len(got))
	}
}

func TestPartitionProperty(t *testing.T) {
	// Every record belongs to exactly one group: category totals must sum to
	// income + expenses.
	entries := []Entry{
		{Category: "Food", Amount: 20.50, Type: "expense"},
		{Category: "Salary", Amount: 1200, Type: "income"},
		{Category: "Food", Amount: 9.99, Type: "expense"},
		{Category: "Transport", Amount: 31.40, Type: "expense"},
		{Category: "Freelance", Amount: 250, Type: "income"},
	}
	s := Summarize(entries)
	var catSum float64
	for _, g := range ByCategory(entries) {
		catSum += g.TotalAmount
	}
	if math.Abs(catSum-(s.TotalIncome+s.TotalExpenses)) > 1e-9 {
		t.Fatalf("partition violated: categories sum to %v, summary sides sum to %v", catSum, s.TotalIncome+s.TotalExpenses)
	}
}

func TestByCategorySortedDescending(t *testing.T) {
	entries := []Entry{
		{Category: "A", Amount: 5, Type: "expense"},
		{Category: "B", Amount: 50, Type: "expense"},
		{Category: "C", Amount: 20, Type: "expense"},
		{Category: "B", Amount: 1, Type: "expense"},
	}
	got := ByCategory(entries)
	for i := 1; i < len(got); i++ {
		if got[i].TotalAmount > got[i-1].TotalAmount {
			t.Fatalf("not sorted descending at %d: %v after %v", i, got[i].TotalAmount, got[i-1].TotalAmount)
		}
	}
}
