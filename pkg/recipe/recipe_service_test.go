package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"context"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRecipeRepository struct {
	mock.Mock
}

func (m *mockRecipeRepository) CreateRecipeWithIngredients(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient) error {
	return m.Called(ctx, recipe, rows).Error(0)
}

func (m *mockRecipeRepository) UpdateRecipeWithIngredients(ctx context.Context, recipe *entities.Recipe, rows []*entities.RecipeIngredient) error {
	return m.Called(ctx, recipe, rows).Error(0)
}

func (m *mockRecipeRepository) DeleteRecipeCascade(ctx context.Context, recipeID uuid.UUID) error {
	return m.Called(ctx, recipeID).Error(0)
}

func (m *mockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) GetRecipeByShortCode(ctx context.Context, code string) (*entities.Recipe, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeListFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error) {
	args := m.Called(ctx, filter, viewerID, page, limit)
	recipes, _ := args.Get(0).([]*entities.Recipe)
	return recipes, args.Get(1).(int64), args.Error(2)
}

func (m *mockRecipeRepository) GetRecipeIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	args := m.Called(ctx, recipeID)
	rows, _ := args.Get(0).([]*entities.RecipeIngredient)
	return rows, args.Error(1)
}

func (m *mockRecipeRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *mockRecipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRecipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRecipeRepository) AddToCart(ctx context.Context, userID, recipeID string) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *mockRecipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID string) (int64, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRecipeRepository) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRecipeRepository) GetCartIngredientRows(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*entities.RecipeIngredient)
	return rows, args.Error(1)
}

func (m *mockRecipeRepository) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

type mockIngredientRepository struct {
	mock.Mock
}

func (m *mockIngredientRepository) GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	args := m.Called(ctx, namePrefix)
	ingredients, _ := args.Get(0).([]*entities.Ingredient)
	return ingredients, args.Error(1)
}

func (m *mockIngredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ingredient), args.Error(1)
}

func (m *mockIngredientRepository) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error) {
	args := m.Called(ctx, ids)
	ingredients, _ := args.Get(0).([]*entities.Ingredient)
	return ingredients, args.Error(1)
}

func (m *mockIngredientRepository) BulkCreateIngredients(ctx context.Context, ingredients []*entities.Ingredient) (int, error) {
	args := m.Called(ctx, ingredients)
	return args.Int(0), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadFile(name string, data []byte, contentType, folder string, allowedTypes ...string) (string, error) {
	args := m.Called(name, data, contentType, folder, allowedTypes)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteFile(objectKey string) error {
	return m.Called(objectKey).Error(0)
}

func (m *mockStorage) GetPublicLinkKey(objectKey string) string {
	return m.Called(objectKey).String(0)
}

func newTestService() (*mockRecipeRepository, *mockIngredientRepository, *mockStorage, RecipeService) {
	recipeRepo := new(mockRecipeRepository)
	ingredientRepo := new(mockIngredientRepository)
	s3 := new(mockStorage)
	return recipeRepo, ingredientRepo, s3, NewRecipeService(recipeRepo, ingredientRepo, s3)
}

func validImagePayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func TestValidateIngredientItems(t *testing.T) {
	idA := uuid.New().String()
	idB := uuid.New().String()

	tests := []struct {
		name      string
		items     []domain.IngredientItemRequest
		wantField string
	}{
		{"empty list", nil, "ingredients"},
		{"duplicate ingredient", []domain.IngredientItemRequest{
			{ID: idA, Amount: 1}, {ID: idA, Amount: 2},
		}, "ingredients"},
		{"amount below minimum", []domain.IngredientItemRequest{
			{ID: idA, Amount: 0},
		}, "amount"},
		{"amount above maximum", []domain.IngredientItemRequest{
			{ID: idA, Amount: domain.MaxIngredientAmount + 1},
		}, "amount"},
		{"valid", []domain.IngredientItemRequest{
			{ID: idA, Amount: 1}, {ID: idB, Amount: domain.MaxIngredientAmount},
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIngredientItems(tt.items)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestValidateCookingTime(t *testing.T) {
	assert.Error(t, validateCookingTime(0))
	assert.Error(t, validateCookingTime(domain.MaxCookingTime+1))
	assert.NoError(t, validateCookingTime(1))
	assert.NoError(t, validateCookingTime(domain.MaxCookingTime))
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	stored := &entities.Recipe{ID: uuid.New(), UserID: uuid.New(), Name: "borscht", CookingTime: 40}
	recipeID := stored.ID.String()

	t.Run("recipe not found", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.AddFavorite(ctx, recipeID, userID)

		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("already in favorites", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)
		recipeRepo.On("IsFavorited", ctx, userID, recipeID).Return(true, nil)

		_, err := service.AddFavorite(ctx, recipeID, userID)

		assert.ErrorIs(t, err, domain.ErrAlreadyInFavorites)
		recipeRepo.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent add reports the same conflict", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)
		recipeRepo.On("IsFavorited", ctx, userID, recipeID).Return(false, nil)
		recipeRepo.On("AddFavorite", ctx, userID, recipeID).Return(gorm.ErrDuplicatedKey)

		_, err := service.AddFavorite(ctx, recipeID, userID)

		assert.ErrorIs(t, err, domain.ErrAlreadyInFavorites)
	})

	t.Run("success returns the recipe card", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)
		recipeRepo.On("IsFavorited", ctx, userID, recipeID).Return(false, nil)
		recipeRepo.On("AddFavorite", ctx, userID, recipeID).Return(nil)

		card, err := service.AddFavorite(ctx, recipeID, userID)

		require.NoError(t, err)
		assert.Equal(t, recipeID, card.ID)
		assert.Equal(t, "borscht", card.Name)
		assert.Equal(t, 40, card.CookingTime)
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	stored := &entities.Recipe{ID: uuid.New(), UserID: uuid.New()}
	recipeID := stored.ID.String()

	t.Run("missing membership is reported, not swallowed", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)
		recipeRepo.On("RemoveFromCart", ctx, userID, recipeID).Return(int64(0), nil)

		err := service.RemoveFromCart(ctx, recipeID, userID)

		assert.ErrorIs(t, err, domain.ErrNotInCart)
	})

	t.Run("success", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)
		recipeRepo.On("RemoveFromCart", ctx, userID, recipeID).Return(int64(1), nil)

		assert.NoError(t, service.RemoveFromCart(ctx, recipeID, userID))
	})
}

func TestGetRecipesAnonymousViewerFilters(t *testing.T) {
	ctx := context.Background()
	recipeRepo, _, _, service := newTestService()

	recipes, count, err := service.GetRecipes(ctx, domain.RecipeListFilter{OnlyFavorited: true}, "", 1, 6)

	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Zero(t, count)
	recipeRepo.AssertNotCalled(t, "GetRecipes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()
	author := uuid.New()
	stored := &entities.Recipe{ID: uuid.New(), UserID: author, Name: "old", CookingTime: 10}
	recipeID := stored.ID.String()

	t.Run("only the author may update", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)

		_, err := service.UpdateRecipe(ctx, recipeID, domain.UpdateRecipeRequest{}, uuid.New().String())

		assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
	})

	t.Run("invalid payload rejected before any write", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByID", ctx, recipeID).Return(stored, nil)

		_, err := service.UpdateRecipe(ctx, recipeID, domain.UpdateRecipeRequest{
			Name:        "new",
			Text:        "text",
			CookingTime: 15,
		}, author.String())

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		recipeRepo.AssertNotCalled(t, "UpdateRecipeWithIngredients", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateRecipeRetriesShortCodeCollision(t *testing.T) {
	ctx := context.Background()
	author := uuid.New()
	ingredientID := uuid.New()

	recipeRepo, ingredientRepo, s3, service := newTestService()
	ingredientRepo.On("GetIngredientsByIDs", ctx, []string{ingredientID.String()}).
		Return([]*entities.Ingredient{{ID: ingredientID, Name: "salt", MeasurementUnit: "g"}}, nil)
	s3.On("UploadFile", mock.Anything, mock.Anything, "image/png", "recipes", mock.Anything).
		Return("recipes/key.png", nil)
	s3.On("GetPublicLinkKey", "recipes/key.png").Return("https://cdn.example/recipes/key.png")

	recipeRepo.On("CreateRecipeWithIngredients", ctx, mock.Anything, mock.Anything).
		Return(gorm.ErrDuplicatedKey).Once()
	recipeRepo.On("CreateRecipeWithIngredients", ctx, mock.Anything, mock.Anything).
		Return(nil).Once()
	recipeRepo.On("GetRecipeIngredients", ctx, mock.Anything).
		Return([]*entities.RecipeIngredient{}, nil)
	recipeRepo.On("IsFavorited", ctx, author.String(), mock.Anything).Return(false, nil)
	recipeRepo.On("IsInCart", ctx, author.String(), mock.Anything).Return(false, nil)

	res, err := service.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Name:        "borscht",
		Image:       validImagePayload(),
		Text:        "cook it",
		CookingTime: 40,
		Ingredients: []domain.IngredientItemRequest{{ID: ingredientID.String(), Amount: 5}},
	}, author.String())

	require.NoError(t, err)
	assert.Equal(t, "borscht", res.Name)
	recipeRepo.AssertNumberOfCalls(t, "CreateRecipeWithIngredients", 2)
}

func TestResolveShortCode(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByShortCode", ctx, "deadbeef").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ResolveShortCode(ctx, "deadbeef")

		assert.ErrorIs(t, err, domain.ErrShortLinkNotFound)
	})

	t.Run("known code resolves to the recipe id", func(t *testing.T) {
		stored := &entities.Recipe{ID: uuid.New(), ShortCode: "deadbeef"}
		recipeRepo, _, _, service := newTestService()
		recipeRepo.On("GetRecipeByShortCode", ctx, "deadbeef").Return(stored, nil)

		id, err := service.ResolveShortCode(ctx, "deadbeef")

		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), id)
	})
}

func TestBuildShoppingList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	recipeRepo, _, _, service := newTestService()
	recipeRepo.On("GetCartIngredientRows", ctx, userID).Return([]*entities.RecipeIngredient{
		ledgerRow("salt", "g", 5),
		ledgerRow("salt", "g", 3),
	}, nil)

	content, err := service.BuildShoppingList(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "salt (g) — 8", content)
}
