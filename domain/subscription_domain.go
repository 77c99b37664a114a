package domain

import (
	"errors"
)

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfFollow       = errors.New("cannot follow self")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

type (
	// SubscriptionResponse annotates a followed author with the viewer's
	// own follow state, a capped recipe preview and the uncapped count.
	SubscriptionResponse struct {
		ID           string               `json:"id"`
		Email        string               `json:"email"`
		Username     string               `json:"username"`
		FirstName    string               `json:"first_name"`
		LastName     string               `json:"last_name"`
		Avatar       string               `json:"avatar,omitempty"`
		IsSubscribed bool                 `json:"is_subscribed"`
		Recipes      []RecipeCardResponse `json:"recipes"`
		RecipesCount int                  `json:"recipes_count"`
	}
)
