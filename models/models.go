package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Product represents a product page being monitored for price drops.
// CurrentPrice is NULL until the first successful extraction: subscriptions
// to JS-rendered pages start as stubs and get a price on the next
// scheduled run.
type Product struct {
	URL          string          `json:"url" db:"product_url"`
	Name         string          `json:"name" db:"product_name"`
	CurrentPrice sql.NullFloat64 `json:"current_price" db:"current_price"`
	Currency     string          `json:"currency" db:"currency"`
	LastChecked  *time.Time      `json:"last_checked" db:"last_checked"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// HasPrice returns true if the product has a known current price
func (p *Product) HasPrice() bool {
	return p.CurrentPrice.Valid
}

// GetCurrentPrice returns the current price as float64, or 0 if NULL
func (p *Product) GetCurrentPrice() float64 {
	if p.CurrentPrice.Valid {
		return p.CurrentPrice.Float64
	}
	return 0.0
}

// MarshalJSON implements custom JSON marshaling for Product
func (p *Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		*Alias
		CurrentPrice *float64 `json:"current_price"`
	}{
		Alias:        (*Alias)(p),
		CurrentPrice: p.getCurrentPricePtr(),
	})
}

func (p *Product) getCurrentPricePtr() *float64 {
	if p.CurrentPrice.Valid {
		price := p.CurrentPrice.Float64
		return &price
	}
	return nil
}

// Subscription represents one email address watching one product URL.
// The unsubscribe token doubles as the secret in the unsubscribe link,
// so the unsubscribe endpoint needs no authentication.
type Subscription struct {
	ID               string     `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	ProductURL       string     `json:"product_url" db:"product_url"`
	Active           bool       `json:"active" db:"active"`
	UnsubscribeToken string     `json:"-" db:"unsubscribe_token"`
	UnsubscribeURL   string     `json:"-" db:"unsubscribe_url"`
	SubscribedAt     time.Time  `json:"subscribed_at" db:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at" db:"unsubscribed_at"`
	ReactivatedAt    *time.Time `json:"reactivated_at" db:"reactivated_at"`
}

// PriceDropEvent is published by the scheduler when a tracked product's
// price falls, and consumed by the notifier fan-out worker.
type PriceDropEvent struct {
	ProductURL  string  `json:"product_url"`
	ProductName string  `json:"product_name"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	Currency    string  `json:"currency"`
}

// Savings returns the absolute amount saved by the drop
func (e *PriceDropEvent) Savings() float64 {
	return e.OldPrice - e.NewPrice
}

// SavingsPercent returns the drop as a percentage of the old price
func (e *PriceDropEvent) SavingsPercent() float64 {
	if e.OldPrice <= 0 {
		return 0
	}
	return (e.Savings() / e.OldPrice) * 100
}

// SubscribeRequest represents the request to subscribe to price alerts
type SubscribeRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Email       string `json:"email" validate:"required,email"`
	ProductName string `json:"product_name"`
}
