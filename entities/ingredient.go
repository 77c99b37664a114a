package entities

import (
	"github.com/google/uuid"
)

// Ingredient is a catalog row. (Name, MeasurementUnit) is unique, so
// grouping shopping-list output by the pair can never merge two distinct
// catalog entries.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:128;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:64;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
