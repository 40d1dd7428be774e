// Package stats reduces transaction records into summary and per-category
// statistics. It is pure: no I/O, no store access, just arithmetic over the
// rows a caller already fetched.
package stats

import "sort"

// Entry is the minimal slice of a transaction the aggregators need.
type Entry struct {
	Category string
	Amount   float64
	Type     string
}

// Summary holds the overall totals for a filtered transaction set.
type Summary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryTotal is one row of the per-category breakdown. TransactionType is
// the kind of the last record seen for the category; if a category mixes
// kinds the label reflects only the most recently processed record.
type CategoryTotal struct {
	Category         string  `json:"category"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	TransactionType  string  `json:"transaction_type"`
}

// Summarize accumulates income and expense totals over entries. Any kind
// other than "income" counts as an expense; stored rows are validated at
// write time, so this leniency only matters for legacy data. Accumulation is
// plain float64 with no rounding.
func Summarize(entries []Entry) Summary {
	s := Summary{TransactionCount: len(entries)}
	for _, e := range entries {
		if e.Type == "income" {
			s.TotalIncome += e.Amount
		} else {
			s.TotalExpenses += e.Amount
		}
	}
	s.NetBalance = s.TotalIncome - s.TotalExpenses
	return s
}

// ByCategory groups entries by exact category name and returns the groups
// sorted by total amount descending. Ties keep the order in which categories
// were first encountered.
func ByCategory(entries []Entry) []CategoryTotal {
	index := make(map[string]int)
	groups := make([]CategoryTotal, 0)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, CategoryTotal{Category: e.Category})
		}
		groups[i].TotalAmount += e.Amount
		groups[i].TransactionCount++
		groups[i].TransactionType = e.Type
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalAmount > groups[b].TotalAmount
	})
	return groups
}
