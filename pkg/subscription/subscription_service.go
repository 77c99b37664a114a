package subscription

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, followerID, authorID, recipesLimit string) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, followerID, authorID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit int, recipesLimit string) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

// Subscribe checks its preconditions in a fixed order: the author must
// exist, the follower must not be the author, the edge must not already
// exist. The first failing check names the reported error.
func (s *subscriptionService) Subscribe(ctx context.Context, followerID, authorID, recipesLimit string) (domain.SubscriptionResponse, error) {
	author, err := s.subscriptionRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	if followerID == authorID {
		return domain.SubscriptionResponse{}, domain.ErrSelfFollow
	}

	following, err := s.subscriptionRepository.IsFollowing(ctx, followerID, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if following {
		return domain.SubscriptionResponse{}, domain.ErrAlreadyFollowing
	}

	if err := s.subscriptionRepository.CreateFollow(ctx, followerID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadyFollowing
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.projectSubscription(ctx, author, followerID, recipesLimit)
}

// Unsubscribe treats a missing edge as a reported error, not a silent
// success.
func (s *subscriptionService) Unsubscribe(ctx context.Context, followerID, authorID string) error {
	_, err := s.subscriptionRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	deleted, err := s.subscriptionRepository.DeleteFollow(ctx, followerID, authorID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFollowing
	}
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, userID string, page, limit int, recipesLimit string) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.subscriptionRepository.GetFollowedAuthors(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		projected, err := s.projectSubscription(ctx, author, userID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, projected)
	}
	return result, count, nil
}

// parseRecipesLimit is lenient: absent or non-numeric means no cap.
func parseRecipesLimit(raw string) int {
	if raw == "" {
		return -1
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return -1
	}
	return limit
}

func (s *subscriptionService) projectSubscription(ctx context.Context, author *entities.User, viewerID, recipesLimit string) (domain.SubscriptionResponse, error) {
	isSubscribed, err := s.subscriptionRepository.IsFollowing(ctx, viewerID, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	recipes, err := s.subscriptionRepository.GetRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	recipesCount, err := s.subscriptionRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	// The cap truncates the already-materialized ordered list; the count
	// stays uncapped.
	if limit := parseRecipesLimit(recipesLimit); limit >= 0 && limit < len(recipes) {
		recipes = recipes[:limit]
	}

	cards := make([]domain.RecipeCardResponse, 0, len(recipes))
	for _, recipe := range recipes {
		cards = append(cards, domain.RecipeCardResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		ID:           author.ID.String(),
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       author.AvatarURL,
		IsSubscribed: isSubscribed,
		Recipes:      cards,
		RecipesCount: int(recipesCount),
	}, nil
}
