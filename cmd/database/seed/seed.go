package main

import (
	"Recipe-Share-Backend/cmd/config"
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/ingredient"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Loads the ingredient catalog from a JSON file of
// {"name", "measurement_unit"} objects. Rows that already exist are
// skipped, so reruns are safe.
func main() {
	path := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *path, err)
	}

	var items []domain.IngredientResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatalf("failed to parse %s: %v", *path, err)
	}

	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	inserted, err := service.SeedIngredients(context.Background(), items)
	if err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}

	log.Printf("seeded %d of %d ingredients from %s", inserted, len(items), *path)
}
