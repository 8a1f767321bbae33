package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Financ3/price-drop-notifier/models"
	"github.com/Financ3/price-drop-notifier/notifier"
	"github.com/Financ3/price-drop-notifier/repository"
	"github.com/Financ3/price-drop-notifier/scraper"
)

// PriceChecker periodically re-scrapes every product that has at least
// one active subscriber, updates the stored price, and publishes an
// event when the price dropped
type PriceChecker struct {
	cron        *cron.Cron
	schedule    string
	productRepo *repository.ProductRepository
	scraper     *scraper.ProductScraper
	events      *notifier.Notifier
}

func NewPriceChecker(schedule string, productRepo *repository.ProductRepository, productScraper *scraper.ProductScraper, events *notifier.Notifier) *PriceChecker {
	return &PriceChecker{
		cron:        cron.New(cron.WithSeconds()),
		schedule:    schedule,
		productRepo: productRepo,
		scraper:     productScraper,
		events:      events,
	}
}

// Start starts the scheduled price checking
func (pc *PriceChecker) Start() {
	_, err := pc.cron.AddFunc(pc.schedule, pc.CheckAllPrices)
	if err != nil {
		log.Error().Err(err).Str("schedule", pc.schedule).Msg("Failed to schedule price checker")
		return
	}

	pc.cron.Start()
	log.Info().Str("schedule", pc.schedule).Msg("Price checker scheduled")
}

// Stop stops the scheduled price checking
func (pc *PriceChecker) Stop() {
	if pc.cron != nil {
		pc.cron.Stop()
	}
}

// CheckAllPrices checks prices for all actively tracked products
func (pc *PriceChecker) CheckAllPrices() {
	log.Info().Msg("Starting scheduled price check")

	products, err := pc.productRepo.GetActivelyTrackedProducts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get tracked products")
		return
	}

	if len(products) == 0 {
		log.Info().Msg("No products to check")
		return
	}

	log.Info().Int("count", len(products)).Msg("Checking prices")

	for _, product := range products {
		go pc.checkProductPrice(product)
	}
}

// checkProductPrice re-scrapes one product. The stored product name is
// passed as the anchor hint so extraction targets the right price even
// on pages full of recommendations. A failed or empty scrape is logged
// and skipped; the next scheduled run is the retry policy.
func (pc *PriceChecker) checkProductPrice(product models.Product) {
	log.Info().Str("name", product.Name).Str("url", product.URL).Msg("Checking price")

	result, err := pc.scraper.ScrapeProduct(context.Background(), product.URL, true, product.Name)
	if err != nil {
		log.Warn().Err(err).Str("url", product.URL).Msg("Failed to scrape price")
		return
	}
	if result == nil {
		log.Warn().Str("url", product.URL).Msg("Could not extract price")
		return
	}

	storedPrice := product.GetCurrentPrice()
	log.Info().
		Str("name", product.Name).
		Float64("stored", storedPrice).
		Float64("new", result.Price).
		Str("currency", result.Currency).
		Msg("Price check complete")

	if product.HasPrice() && result.Price < storedPrice {
		log.Info().
			Str("name", product.Name).
			Float64("old", storedPrice).
			Float64("new", result.Price).
			Msg("PRICE DROP detected")

		pc.events.PublishPriceDrop(models.PriceDropEvent{
			ProductURL:  product.URL,
			ProductName: result.Name,
			OldPrice:    storedPrice,
			NewPrice:    result.Price,
			Currency:    product.Currency,
		})
	}

	// Always record the fresh price, whichever direction it moved
	if err := pc.productRepo.UpdateProductPrice(product.URL, result.Name, result.Price, result.Currency); err != nil {
		log.Error().Err(err).Str("url", product.URL).Msg("Failed to update product price")
	}
}
