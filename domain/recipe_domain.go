package domain

import (
	"errors"
)

const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
	MinCookingTime      = 1
	MaxCookingTime      = 32000
)

var (
	MessageSuccessGetRecipes           = "success get recipes"
	MessageSuccessGetRecipeDetail      = "success get recipe detail"
	MessageSuccessCreateRecipe         = "recipe created successfully"
	MessageSuccessUpdateRecipe         = "recipe updated successfully"
	MessageSuccessDeleteRecipe         = "recipe deleted successfully"
	MessageSuccessAddFavorite          = "recipe added to favorites"
	MessageSuccessRemoveFavorite       = "recipe removed from favorites"
	MessageSuccessAddToCart            = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart       = "recipe removed from shopping cart"
	MessageSuccessGetShortLink         = "success get short link"
	MessageSuccessDownloadShoppingList = "shopping list generated"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShortLink    = "failed to get short link"
	MessageFailedShoppingList    = "failed to build shopping list"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrNotRecipeAuthor    = errors.New("only the author can modify this recipe")
	ErrAlreadyInFavorites = errors.New("already added to favorites")
	ErrNotInFavorites     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart      = errors.New("already added to shopping cart")
	ErrNotInCart          = errors.New("recipe is not in shopping cart")
	ErrShortLinkNotFound  = errors.New("short link not found")
)

type (
	// IngredientItemRequest is one (ingredient, amount) pair of a recipe
	// write. Range bounds live in the validate tags; emptiness and
	// duplicate checks are done in the service.
	IngredientItemRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=32000"`
	}

	CreateRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=256"`
		Text        string                  `json:"text" validate:"required"`
		Image       string                  `json:"image" validate:"required"`
		CookingTime int                     `json:"cooking_time" validate:"required,min=1,max=32000"`
		Ingredients []IngredientItemRequest `json:"ingredients" validate:"required,dive"`
	}

	UpdateRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=256"`
		Text        string                  `json:"text" validate:"required"`
		Image       string                  `json:"image" validate:"omitempty"`
		CookingTime int                     `json:"cooking_time" validate:"required,min=1,max=32000"`
		Ingredients []IngredientItemRequest `json:"ingredients" validate:"required,dive"`
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Author           UserResponse               `json:"author"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image,omitempty"`
		Text             string                     `json:"text"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		CookingTime      int                        `json:"cooking_time"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	}

	// RecipeCardResponse is the compact projection used by membership
	// responses and subscription previews.
	RecipeCardResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeListFilter narrows the recipe listing. Flag filters apply to
	// the viewer; an anonymous viewer with a truthy flag matches nothing.
	RecipeListFilter struct {
		AuthorID      string
		OnlyFavorited bool
		OnlyInCart    bool
	}

	// ShoppingListItem is one aggregated group of the shopping list:
	// identical (name, unit) pairs summed across every recipe in the cart.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)
