package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"fmt"
	"sort"
	"strings"
)

// AggregateCartRows groups ledger rows by (ingredient name, measurement
// unit), sums the amounts within each group and sorts the groups by
// ingredient name. Grouping by the display pair rather than the
// ingredient id matches the catalog's own uniqueness constraint, so the
// same ingredient referenced by several recipes is summed exactly once.
func AggregateCartRows(rows []*entities.RecipeIngredient) []domain.ShoppingListItem {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int)
	for _, row := range rows {
		if row.Ingredient == nil {
			continue
		}
		k := key{name: row.Ingredient.Name, unit: row.Ingredient.MeasurementUnit}
		totals[k] += row.Amount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Amount:          total,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

// FormatShoppingList renders the aggregated items one per line as
// "{name} ({unit}) — {amount}". An empty cart renders an empty report.
func FormatShoppingList(items []domain.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) — %d", item.Name, item.MeasurementUnit, item.Amount))
	}
	return strings.Join(lines, "\n")
}
