package subscription

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockSubscriptionRepository) CreateFollow(ctx context.Context, userID, authorID string) error {
	return m.Called(ctx, userID, authorID).Error(0)
}

func (m *mockSubscriptionRepository) DeleteFollow(ctx context.Context, userID, authorID string) (int64, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepository) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepository) GetFollowedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	authors, _ := args.Get(0).([]*entities.User)
	return authors, args.Get(1).(int64), args.Error(2)
}

func (m *mockSubscriptionRepository) GetRecipesByAuthor(ctx context.Context, authorID string) ([]*entities.Recipe, error) {
	args := m.Called(ctx, authorID)
	recipes, _ := args.Get(0).([]*entities.Recipe)
	return recipes, args.Error(1)
}

func (m *mockSubscriptionRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func authorRecipes(n int) []*entities.Recipe {
	recipes := make([]*entities.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, &entities.Recipe{ID: uuid.New(), Name: "dish", CookingTime: 10})
	}
	return recipes
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	follower := uuid.New().String()
	author := &entities.User{ID: uuid.New(), Username: "chef"}
	authorID := author.ID.String()

	t.Run("author must exist before any other check", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Subscribe(ctx, follower, authorID, "")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)

		_, err := service.Subscribe(ctx, authorID, authorID, "")

		assert.ErrorIs(t, err, domain.ErrSelfFollow)
		repo.AssertNotCalled(t, "CreateFollow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate follow rejected", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)
		repo.On("IsFollowing", ctx, follower, authorID).Return(true, nil)

		_, err := service.Subscribe(ctx, follower, authorID, "")

		assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)
	})

	t.Run("losing a concurrent follow reports the same conflict", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)
		repo.On("IsFollowing", ctx, follower, authorID).Return(false, nil)
		repo.On("CreateFollow", ctx, follower, authorID).Return(gorm.ErrDuplicatedKey)

		_, err := service.Subscribe(ctx, follower, authorID, "")

		assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)
	})

	t.Run("success returns the author with recipes", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)
		repo.On("IsFollowing", ctx, follower, authorID).Return(false, nil).Once()
		repo.On("CreateFollow", ctx, follower, authorID).Return(nil)
		repo.On("IsFollowing", ctx, follower, authorID).Return(true, nil)
		repo.On("GetRecipesByAuthor", ctx, authorID).Return(authorRecipes(2), nil)
		repo.On("CountRecipesByAuthor", ctx, authorID).Return(int64(2), nil)

		res, err := service.Subscribe(ctx, follower, authorID, "")

		require.NoError(t, err)
		assert.Equal(t, "chef", res.Username)
		assert.True(t, res.IsSubscribed)
		assert.Len(t, res.Recipes, 2)
		assert.Equal(t, 2, res.RecipesCount)
	})
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	follower := uuid.New().String()
	author := &entities.User{ID: uuid.New()}
	authorID := author.ID.String()

	t.Run("author must exist", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, service.Unsubscribe(ctx, follower, authorID), domain.ErrUserNotFound)
	})

	t.Run("missing edge is reported", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)
		repo.On("DeleteFollow", ctx, follower, authorID).Return(int64(0), nil)

		assert.ErrorIs(t, service.Unsubscribe(ctx, follower, authorID), domain.ErrNotFollowing)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(mockSubscriptionRepository)
		service := NewSubscriptionService(repo)
		repo.On("GetUserByID", ctx, authorID).Return(author, nil)
		repo.On("DeleteFollow", ctx, follower, authorID).Return(int64(1), nil)

		assert.NoError(t, service.Unsubscribe(ctx, follower, authorID))
	})
}

func TestParseRecipesLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", -1},
		{"abc", -1},
		{"-2", -1},
		{"0", 0},
		{"3", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseRecipesLimit(tt.raw), "raw=%q", tt.raw)
	}
}

func TestGetSubscriptionsRecipesLimit(t *testing.T) {
	ctx := context.Background()
	follower := uuid.New().String()
	author := &entities.User{ID: uuid.New(), Username: "chef"}
	authorID := author.ID.String()

	setup := func() *mockSubscriptionRepository {
		repo := new(mockSubscriptionRepository)
		repo.On("GetFollowedAuthors", ctx, follower, 1, 6).Return([]*entities.User{author}, int64(1), nil)
		repo.On("IsFollowing", ctx, follower, authorID).Return(true, nil)
		repo.On("GetRecipesByAuthor", ctx, authorID).Return(authorRecipes(5), nil)
		repo.On("CountRecipesByAuthor", ctx, authorID).Return(int64(5), nil)
		return repo
	}

	t.Run("caps the recipe list but not the count", func(t *testing.T) {
		service := NewSubscriptionService(setup())

		subs, count, err := service.GetSubscriptions(ctx, follower, 1, 6, "2")

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		require.Len(t, subs, 1)
		assert.Len(t, subs[0].Recipes, 2)
		assert.Equal(t, 5, subs[0].RecipesCount)
	})

	t.Run("non-numeric limit means no cap", func(t *testing.T) {
		service := NewSubscriptionService(setup())

		subs, _, err := service.GetSubscriptions(ctx, follower, 1, 6, "lots")

		require.NoError(t, err)
		assert.Len(t, subs[0].Recipes, 5)
	})
}
