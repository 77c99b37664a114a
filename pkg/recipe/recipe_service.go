package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/ingredient"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shortCodeMaxRetries = 3

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeListFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, authorID string) error

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeCardResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeCardResponse, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error

		BuildShoppingList(ctx context.Context, userID string) (string, error)
		GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error)
		ResolveShortCode(ctx context.Context, code string) (string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, ingredientRepository ingredient.IngredientRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		s3:                   s3,
	}
}

// validateIngredientItems checks the whole payload before any write:
// non-empty, no repeated ingredient id, every amount within bounds.
func validateIngredientItems(items []domain.IngredientItemRequest) error {
	if len(items) == 0 {
		return domain.NewValidationError("ingredients", "at least one ingredient is required")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return domain.NewValidationError("ingredients", "ingredients must not repeat")
		}
		seen[item.ID] = true

		if item.Amount < domain.MinIngredientAmount || item.Amount > domain.MaxIngredientAmount {
			return domain.NewValidationError("amount", fmt.Sprintf(
				"amount must be between %d and %d",
				domain.MinIngredientAmount, domain.MaxIngredientAmount,
			))
		}
	}
	return nil
}

func validateCookingTime(minutes int) error {
	if minutes < domain.MinCookingTime || minutes > domain.MaxCookingTime {
		return domain.NewValidationError("cooking_time", fmt.Sprintf(
			"cooking time must be between %d and %d minutes",
			domain.MinCookingTime, domain.MaxCookingTime,
		))
	}
	return nil
}

// resolveIngredients maps the validated items to ledger rows, failing if
// any referenced ingredient is missing from the catalog.
func (s *recipeService) resolveIngredients(ctx context.Context, items []domain.IngredientItemRequest) ([]*entities.RecipeIngredient, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(items) {
		return nil, domain.ErrIngredientNotFound
	}

	rows := make([]*entities.RecipeIngredient, 0, len(items))
	for _, item := range items {
		ingredientUUID, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		rows = append(rows, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientUUID,
			Amount:       item.Amount,
		})
	}
	return rows, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, payload string) (string, error) {
	raw, ext, contentType, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return "", domain.NewValidationError("image", "invalid base64 image payload")
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("recipe-%s.%s", recipeID.String(), ext),
		raw,
		contentType,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	if err := validateIngredientItems(req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := validateCookingTime(req.CookingTime); err != nil {
		return domain.RecipeResponse{}, err
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	rows, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipeID := uuid.New()
	imageURL, err := s.uploadImage(recipeID, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		UserID:      authorUUID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	// The short-code unique index can collide; regenerate and retry.
	for attempt := 0; ; attempt++ {
		code, err := GenerateShortCode()
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ShortCode = code

		err = s.recipeRepository.CreateRecipeWithIngredients(ctx, recipe, rows)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < shortCodeMaxRetries {
			continue
		}
		return domain.RecipeResponse{}, err
	}

	return s.projectRecipe(ctx, recipe, authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if recipe.UserID.String() != authorID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	if err := validateIngredientItems(req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := validateCookingTime(req.CookingTime); err != nil {
		return domain.RecipeResponse{}, err
	}

	rows, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if err := s.recipeRepository.UpdateRecipeWithIngredients(ctx, recipe, rows); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.projectRecipe(ctx, recipe, authorID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, authorID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.UserID.String() != authorID {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipeCascade(ctx, recipe.ID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeListFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	// Viewer-relative filters match nothing for anonymous viewers.
	if viewerID == "" && (filter.OnlyFavorited || filter.OnlyInCart) {
		return []domain.RecipeResponse{}, 0, nil
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		projected, err := s.projectRecipe(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, projected)
	}
	return result, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.projectRecipe(ctx, recipe, viewerID)
}

// projectRecipe re-runs the read projection: author block, resolved
// ingredient names and units, and the viewer's favorite/cart flags. The
// write path returns this rather than echoing its own payload.
func (s *recipeService) projectRecipe(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	rows, err := s.recipeRepository.GetRecipeIngredients(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(rows))
	for _, row := range rows {
		res := domain.RecipeIngredientResponse{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			res.Name = row.Ingredient.Name
			res.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, res)
	}

	isFavorited := false
	isInCart := false
	if viewerID != "" {
		isFavorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		isInCart, err = s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	author := domain.UserResponse{ID: recipe.UserID.String()}
	if recipe.User != nil {
		author.Email = recipe.User.Email
		author.Username = recipe.User.Username
		author.FirstName = recipe.User.FirstName
		author.LastName = recipe.User.LastName
		author.Avatar = recipe.User.AvatarURL
	}
	if viewerID != "" && viewerID != recipe.UserID.String() {
		author.IsSubscribed, err = s.recipeRepository.IsFollowing(ctx, viewerID, recipe.UserID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Author:           author,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		Ingredients:      ingredients,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}, nil
}

func (s *recipeService) projectCard(recipe *entities.Recipe) domain.RecipeCardResponse {
	return domain.RecipeCardResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

// AddFavorite reports a second add for the same pair as a conflict, not a
// silent success: "already true" and "newly true" are different answers.
func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeCardResponse, error) {
	return s.addMark(ctx, recipeID, userID,
		s.recipeRepository.IsFavorited, s.recipeRepository.AddFavorite, domain.ErrAlreadyInFavorites)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	return s.removeMark(ctx, recipeID, userID,
		s.recipeRepository.RemoveFavorite, domain.ErrNotInFavorites)
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeCardResponse, error) {
	return s.addMark(ctx, recipeID, userID,
		s.recipeRepository.IsInCart, s.recipeRepository.AddToCart, domain.ErrAlreadyInCart)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	return s.removeMark(ctx, recipeID, userID,
		s.recipeRepository.RemoveFromCart, domain.ErrNotInCart)
}

func (s *recipeService) addMark(
	ctx context.Context,
	recipeID, userID string,
	exists func(context.Context, string, string) (bool, error),
	create func(context.Context, string, string) error,
	conflictErr error,
) (domain.RecipeCardResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeCardResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeCardResponse{}, err
	}

	present, err := exists(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeCardResponse{}, err
	}
	if present {
		return domain.RecipeCardResponse{}, conflictErr
	}

	if err := create(ctx, userID, recipeID); err != nil {
		// The unique index arbitrates concurrent adds; the losing
		// writer observes the same conflict as a plain duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeCardResponse{}, conflictErr
		}
		return domain.RecipeCardResponse{}, err
	}

	return s.projectCard(recipe), nil
}

func (s *recipeService) removeMark(
	ctx context.Context,
	recipeID, userID string,
	remove func(context.Context, string, string) (int64, error),
	notFoundErr error,
) error {
	_, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFoundErr
	}
	return nil
}

// BuildShoppingList recomputes the report from the current cart on every
// call; nothing is materialized.
func (s *recipeService) BuildShoppingList(ctx context.Context, userID string) (string, error) {
	rows, err := s.recipeRepository.GetCartIngredientRows(ctx, userID)
	if err != nil {
		return "", err
	}
	return FormatShoppingList(AggregateCartRows(rows)), nil
}

func (s *recipeService) GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortLinkResponse{}, err
	}

	return domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s", utils.GetConfig("APP_URL"), recipe.ShortCode),
	}, nil
}

func (s *recipeService) ResolveShortCode(ctx context.Context, code string) (string, error) {
	recipe, err := s.recipeRepository.GetRecipeByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrShortLinkNotFound
		}
		return "", err
	}
	return recipe.ID.String(), nil
}
