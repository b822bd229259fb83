package aggregator

import (
	"sort"

	"fjacquet/gl-analyzer/internal/classifier"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// GroupItems sums the classified records of one bucket by exact description.
// Items keep the order in which each description was first seen.
func GroupItems(classified []classifier.Classified, bucket models.BucketID) []models.GroupedItem {
	index := make(map[string]int)
	var items []models.GroupedItem
	for _, c := range classified {
		if c.Bucket != bucket {
			continue
		}
		name := c.Record.Description
		if i, ok := index[name]; ok {
			items[i].Value = items[i].Value.Add(c.Record.NetAmount())
			continue
		}
		index[name] = len(items)
		items = append(items, models.GroupedItem{Name: name, Value: c.Record.NetAmount()})
	}
	return items
}

// ApplySort moves the names listed in order to the front, in list order.
// Remaining items keep their relative order. Names absent from items are ignored.
func ApplySort(items []models.GroupedItem, order []string) []models.GroupedItem {
	if len(order) == 0 {
		return items
	}
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}

	out := make([]models.GroupedItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Name]
		rj, jok := rank[out[j].Name]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

// SumItems adds up item values.
func SumItems(items []models.GroupedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Value)
	}
	return total
}
