package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Financ3/price-drop-notifier/database"
	"github.com/Financ3/price-drop-notifier/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// UpsertProduct inserts or updates a product with a known price
func (r *ProductRepository) UpsertProduct(url, name string, price float64, currency string) (*models.Product, error) {
	query := `
		INSERT INTO products (product_url, product_name, current_price, currency, last_checked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $5)
		ON CONFLICT (product_url) DO UPDATE
		SET product_name = EXCLUDED.product_name,
			current_price = EXCLUDED.current_price,
			currency = EXCLUDED.currency,
			last_checked = EXCLUDED.last_checked,
			updated_at = EXCLUDED.updated_at
		RETURNING product_url, product_name, current_price, currency, last_checked, created_at, updated_at
	`

	var product models.Product
	now := time.Now()
	err := database.DB.QueryRow(query, url, name, price, currency, now).Scan(
		&product.URL, &product.Name, &product.CurrentPrice,
		&product.Currency, &product.LastChecked, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product: %v", err)
	}

	return &product, nil
}

// UpsertStub saves a product without a price so the scheduled checker
// picks it up on its next run (JS-rendered pages the fast scrape missed)
func (r *ProductRepository) UpsertStub(url, name string) (*models.Product, error) {
	query := `
		INSERT INTO products (product_url, product_name, currency, created_at, updated_at)
		VALUES ($1, $2, 'USD', $3, $3)
		ON CONFLICT (product_url) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
		RETURNING product_url, product_name, current_price, currency, last_checked, created_at, updated_at
	`

	var product models.Product
	now := time.Now()
	err := database.DB.QueryRow(query, url, name, now).Scan(
		&product.URL, &product.Name, &product.CurrentPrice,
		&product.Currency, &product.LastChecked, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product stub: %v", err)
	}

	return &product, nil
}

// GetProductByURL returns a product by its URL
func (r *ProductRepository) GetProductByURL(url string) (*models.Product, error) {
	query := `
		SELECT product_url, product_name, current_price, currency, last_checked, created_at, updated_at
		FROM products
		WHERE product_url = $1
	`

	var product models.Product
	err := database.DB.QueryRow(query, url).Scan(
		&product.URL, &product.Name, &product.CurrentPrice,
		&product.Currency, &product.LastChecked, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %v", err)
	}

	return &product, nil
}

// GetActivelyTrackedProducts returns every product with at least one
// active subscription
func (r *ProductRepository) GetActivelyTrackedProducts() ([]models.Product, error) {
	query := `
		SELECT DISTINCT p.product_url, p.product_name, p.current_price, p.currency, p.last_checked, p.created_at, p.updated_at
		FROM products p
		INNER JOIN subscriptions s ON s.product_url = p.product_url
		WHERE s.active = true
		ORDER BY p.product_url
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.URL, &product.Name, &product.CurrentPrice,
			&product.Currency, &product.LastChecked, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// UpdateProductPrice updates the stored price, name and check timestamp
func (r *ProductRepository) UpdateProductPrice(url, name string, price float64, currency string) error {
	query := `
		UPDATE products
		SET current_price = $2, product_name = $3, currency = $4, last_checked = $5, updated_at = $5
		WHERE product_url = $1
	`

	_, err := database.DB.Exec(query, url, price, name, currency, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update product price: %v", err)
	}

	return nil
}
