package analytics

import (
	"sort"

	"retailcli/internal/dataset"
)

// DefaultTopN is the reference ranking depth of the dashboard.
const DefaultTopN = 10

// TopEntry is one ranked row: a group key, its joined display name, and the
// revenue summed over the group. Name is nil for keys with no match in the
// joined table; the row is kept regardless (left-join semantics).
type TopEntry struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Revenue float64 `json:"revenue"`
}

// TopReport carries a ranking result. Applicable is false when either input
// table was empty: that means "insufficient data to rank", which is a
// different signal from a valid empty or zero-revenue ranking.
type TopReport struct {
	Applicable bool       `json:"applicable"`
	Entries    []TopEntry `json:"entries"`
}

// TopCustomers ranks customers by total sale revenue: group sales by
// customer_id, sum total_amount, left-join customer_name, sort descending,
// take the first n.
func TopCustomers(snap *dataset.Snapshot, n int) TopReport {
	return topByRevenue(snap.Sales, dataset.ColCustomerID,
		snap.Customers, dataset.ColCustomerID, dataset.ColCustomerName, n)
}

// TopProducts ranks products by total sale revenue, joined against the
// inventory table for display names.
func TopProducts(snap *dataset.Snapshot, n int) TopReport {
	return topByRevenue(snap.Sales, dataset.ColProductID,
		snap.Inventory, dataset.ColProductID, dataset.ColProductName, n)
}

// topByRevenue implements the shared group → sum → left-join → sort → limit
// pipeline. Group keys are collected in first-appearance order and the sort
// is stable, so ties keep their original relative order and repeated runs on
// identical input produce identical output.
func topByRevenue(sales *dataset.Table, keyColumn string, joined *dataset.Table, joinKey, joinName string, n int) TopReport {
	if sales.IsEmpty() || joined.IsEmpty() {
		return TopReport{Applicable: false}
	}
	keyCol, ok := sales.Lookup(keyColumn)
	if !ok {
		return TopReport{Applicable: false}
	}
	amountCol, hasAmount := sales.Lookup(dataset.ColTotalAmount)

	revenue := make(map[string]float64)
	var order []string
	for row := 0; row < sales.RowCount(); row++ {
		key := sales.Cell(row, keyCol).String()
		if _, seen := revenue[key]; !seen {
			order = append(order, key)
			revenue[key] = 0
		}
		if hasAmount {
			amount, _ := sales.Cell(row, amountCol).Number()
			revenue[key] += amount
		}
	}

	names := displayNames(joined, joinKey, joinName)

	entries := make([]TopEntry, 0, len(order))
	for _, key := range order {
		entry := TopEntry{ID: key, Revenue: revenue[key]}
		if name, ok := names[key]; ok {
			entry.Name = &name
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Revenue > entries[j].Revenue
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return TopReport{Applicable: true, Entries: entries}
}

// displayNames indexes the join table's display name by key. Duplicate keys
// keep the first occurrence, matching a first-match join.
func displayNames(t *dataset.Table, keyColumn, nameColumn string) map[string]string {
	keyCol, ok := t.Lookup(keyColumn)
	if !ok {
		return nil
	}
	nameCol, hasName := t.Lookup(nameColumn)

	names := make(map[string]string, t.RowCount())
	for row := 0; row < t.RowCount(); row++ {
		key := t.Cell(row, keyCol).String()
		if _, seen := names[key]; seen {
			continue
		}
		if hasName {
			names[key] = t.Cell(row, nameCol).String()
		} else {
			names[key] = ""
		}
	}
	return names
}
