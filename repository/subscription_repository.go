package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Financ3/price-drop-notifier/database"
	"github.com/Financ3/price-drop-notifier/models"
)

type SubscriptionRepository struct{}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

const subscriptionColumns = `id, email, product_url, active, unsubscribe_token, unsubscribe_url, subscribed_at, unsubscribed_at, reactivated_at`

// CreateSubscription creates a new active subscription with a fresh
// unsubscribe token. The full unsubscribe URL is stored at creation time
// so the notifier never needs to know the API base URL.
func (r *SubscriptionRepository) CreateSubscription(email, productURL string, buildUnsubscribeURL func(token string) string) (*models.Subscription, error) {
	token := uuid.NewString()
	query := `
		INSERT INTO subscriptions (id, email, product_url, active, unsubscribe_token, unsubscribe_url, subscribed_at)
		VALUES ($1, $2, $3, true, $4, $5, $6)
		RETURNING ` + subscriptionColumns

	var sub models.Subscription
	err := database.DB.QueryRow(query, uuid.NewString(), email, productURL, token, buildUnsubscribeURL(token), time.Now()).Scan(
		&sub.ID, &sub.Email, &sub.ProductURL, &sub.Active,
		&sub.UnsubscribeToken, &sub.UnsubscribeURL,
		&sub.SubscribedAt, &sub.UnsubscribedAt, &sub.ReactivatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %v", err)
	}

	return &sub, nil
}

// FindByEmailAndURL returns the subscription for an email/product pair,
// active or not, or nil when none exists
func (r *SubscriptionRepository) FindByEmailAndURL(email, productURL string) (*models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE email = $1 AND product_url = $2
		LIMIT 1
	`

	var sub models.Subscription
	err := database.DB.QueryRow(query, email, productURL).Scan(
		&sub.ID, &sub.Email, &sub.ProductURL, &sub.Active,
		&sub.UnsubscribeToken, &sub.UnsubscribeURL,
		&sub.SubscribedAt, &sub.UnsubscribedAt, &sub.ReactivatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription: %v", err)
	}

	return &sub, nil
}

// FindByToken returns the subscription carrying the unsubscribe token,
// or nil when the token is unknown
func (r *SubscriptionRepository) FindByToken(token string) (*models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE unsubscribe_token = $1
		LIMIT 1
	`

	var sub models.Subscription
	err := database.DB.QueryRow(query, token).Scan(
		&sub.ID, &sub.Email, &sub.ProductURL, &sub.Active,
		&sub.UnsubscribeToken, &sub.UnsubscribeURL,
		&sub.SubscribedAt, &sub.UnsubscribedAt, &sub.ReactivatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription by token: %v", err)
	}

	return &sub, nil
}

// Reactivate re-enables an inactive subscription, regenerating the
// unsubscribe URL in case the API base URL changed since sign-up
func (r *SubscriptionRepository) Reactivate(id string, unsubscribeURL string) error {
	query := `
		UPDATE subscriptions
		SET active = true, reactivated_at = $2, unsubscribe_url = $3
		WHERE id = $1
	`

	_, err := database.DB.Exec(query, id, time.Now(), unsubscribeURL)
	if err != nil {
		return fmt.Errorf("failed to reactivate subscription: %v", err)
	}

	return nil
}

// Deactivate marks a subscription inactive
func (r *SubscriptionRepository) Deactivate(id string) error {
	query := `
		UPDATE subscriptions
		SET active = false, unsubscribed_at = $2
		WHERE id = $1
	`

	_, err := database.DB.Exec(query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %v", err)
	}

	return nil
}

// GetActiveSubscribers returns all active subscriptions for a product URL
func (r *SubscriptionRepository) GetActiveSubscribers(productURL string) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE product_url = $1 AND active = true
		ORDER BY subscribed_at
	`

	rows, err := database.DB.Query(query, productURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscribers: %v", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		err := rows.Scan(
			&sub.ID, &sub.Email, &sub.ProductURL, &sub.Active,
			&sub.UnsubscribeToken, &sub.UnsubscribeURL,
			&sub.SubscribedAt, &sub.UnsubscribedAt, &sub.ReactivatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %v", err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}
