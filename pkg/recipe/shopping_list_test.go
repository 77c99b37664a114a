package recipe

import (
	"Recipe-Share-Backend/entities"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ledgerRow(name, unit string, amount int) *entities.RecipeIngredient {
	return &entities.RecipeIngredient{
		Amount:     amount,
		Ingredient: &entities.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestAggregateCartRows(t *testing.T) {
	t.Run("sums same ingredient across recipes", func(t *testing.T) {
		rows := []*entities.RecipeIngredient{
			ledgerRow("salt", "g", 5),
			ledgerRow("salt", "g", 3),
			ledgerRow("milk", "ml", 200),
		}

		items := AggregateCartRows(rows)

		assert.Len(t, items, 2)
		assert.Equal(t, "milk", items[0].Name)
		assert.Equal(t, 200, items[0].Amount)
		assert.Equal(t, "salt", items[1].Name)
		assert.Equal(t, 8, items[1].Amount)
	})

	t.Run("same name with different units stays separate", func(t *testing.T) {
		rows := []*entities.RecipeIngredient{
			ledgerRow("sugar", "g", 100),
			ledgerRow("sugar", "tbsp", 2),
		}

		items := AggregateCartRows(rows)

		assert.Len(t, items, 2)
	})

	t.Run("sorted by ingredient name", func(t *testing.T) {
		rows := []*entities.RecipeIngredient{
			ledgerRow("zucchini", "pc", 1),
			ledgerRow("apple", "pc", 2),
			ledgerRow("milk", "ml", 50),
		}

		items := AggregateCartRows(rows)

		assert.Equal(t, "apple", items[0].Name)
		assert.Equal(t, "milk", items[1].Name)
		assert.Equal(t, "zucchini", items[2].Name)
	})

	t.Run("rows without a loaded ingredient are skipped", func(t *testing.T) {
		rows := []*entities.RecipeIngredient{
			{Amount: 5},
			ledgerRow("salt", "g", 1),
		}

		items := AggregateCartRows(rows)

		assert.Len(t, items, 1)
	})

	t.Run("empty cart", func(t *testing.T) {
		assert.Empty(t, AggregateCartRows(nil))
	})
}

func TestFormatShoppingList(t *testing.T) {
	rows := []*entities.RecipeIngredient{
		ledgerRow("salt", "g", 5),
		ledgerRow("salt", "g", 3),
		ledgerRow("milk", "ml", 200),
	}

	content := FormatShoppingList(AggregateCartRows(rows))

	assert.Equal(t, "milk (ml) — 200\nsalt (g) — 8", content)
}

func TestFormatShoppingListEmpty(t *testing.T) {
	assert.Equal(t, "", FormatShoppingList(nil))
}
