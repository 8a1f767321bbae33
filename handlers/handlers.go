package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Financ3/price-drop-notifier/models"
	"github.com/Financ3/price-drop-notifier/notifier"
	"github.com/Financ3/price-drop-notifier/repository"
	"github.com/Financ3/price-drop-notifier/scraper"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// The synchronous subscribe path must answer quickly, so its scrape
// uses the fast direct fetch mode under a hard deadline
const subscribeScrapeTimeout = 20 * time.Second

type Handlers struct {
	productRepo *repository.ProductRepository
	subRepo     *repository.SubscriptionRepository
	scraper     *scraper.ProductScraper
	mailer      notifier.EmailSender
	baseURL     string
}

func NewHandlers(productRepo *repository.ProductRepository, subRepo *repository.SubscriptionRepository, productScraper *scraper.ProductScraper, mailer notifier.EmailSender, baseURL string) *Handlers {
	return &Handlers{
		productRepo: productRepo,
		subRepo:     subRepo,
		scraper:     productScraper,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

// Subscribe handles POST /api/v1/subscribe: validates the request,
// scrapes the product with the fast fetch mode, upserts the product
// (a stub when no price was found, so the scheduled checker picks it
// up), then creates or reactivates the subscription and sends the
// welcome email
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	url := strings.TrimSpace(req.URL)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	productName := strings.TrimSpace(req.ProductName)

	if url == "" || email == "" {
		writeError(w, http.StatusBadRequest, "Both 'url' and 'email' are required.")
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		writeError(w, http.StatusBadRequest, "URL must start with http:// or https://")
		return
	}
	if !emailRe.MatchString(email) {
		writeError(w, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}

	// Fast scrape, no JS rendering: a miss here is fine, the scheduled
	// checker will retry with the rendered fetch mode
	ctx, cancel := context.WithTimeout(r.Context(), subscribeScrapeTimeout)
	defer cancel()

	log.Info().Str("url", url).Str("product_name", productName).Msg("Scraping URL for subscription")
	result, err := h.scraper.ScrapeProduct(ctx, url, false, productName)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("Fast scrape failed, subscribing anyway")
		result = nil
	}

	if result != nil {
		if _, err := h.productRepo.UpsertProduct(url, result.Name, result.Price, result.Currency); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save product")
			return
		}
	} else {
		stubName := productName
		if stubName == "" {
			stubName = truncate(url, 120)
		}
		if _, err := h.productRepo.UpsertStub(url, stubName); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save product")
			return
		}
	}

	existing, err := h.subRepo.FindByEmailAndURL(email, url)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check subscription")
		return
	}

	var unsubscribeURL string
	switch {
	case existing != nil && existing.Active:
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "You're already subscribed to price alerts for this product.",
			"product": result,
		})
		return
	case existing != nil:
		// Reactivate, regenerating the unsubscribe URL in case the API
		// base URL changed
		unsubscribeURL = h.buildUnsubscribeURL(existing.UnsubscribeToken)
		if err := h.subRepo.Reactivate(existing.ID, unsubscribeURL); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reactivate subscription")
			return
		}
		log.Info().Str("subscription_id", existing.ID).Msg("Reactivated subscription")
	default:
		sub, err := h.subRepo.CreateSubscription(email, url, h.buildUnsubscribeURL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create subscription")
			return
		}
		unsubscribeURL = sub.UnsubscribeURL
	}

	if err := h.sendWelcome(email, result, url, unsubscribeURL, productName); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Welcome email failed")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"emailSent":  false,
			"emailError": "Email delivery failed — check SMTP configuration.",
			"product":    result,
		})
		return
	}

	log.Info().Str("email", email).Msg("Welcome email sent")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"emailSent": true,
		"product":   result,
	})
}

// Unsubscribe handles GET /unsubscribe?token=<token>. The token itself
// acts as the secret, so no authentication is involved. Responses are
// self-contained HTML pages.
func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeHTML(w, http.StatusBadRequest, "<h1>Missing unsubscribe token.</h1>")
		return
	}

	sub, err := h.subRepo.FindByToken(token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up subscription")
		return
	}
	if sub == nil {
		log.Warn().Str("token", token).Msg("Unsubscribe token not found")
		writeHTML(w, http.StatusNotFound, notifier.BuildAlreadyUnsubscribedPage())
		return
	}
	if !sub.Active {
		log.Info().Str("token", token).Msg("Token already used, subscription inactive")
		writeHTML(w, http.StatusOK, notifier.BuildAlreadyUnsubscribedPage())
		return
	}

	if err := h.subRepo.Deactivate(sub.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}

	productName := ""
	if product, err := h.productRepo.GetProductByURL(sub.ProductURL); err == nil {
		productName = product.Name
	}

	log.Info().Str("email", sub.Email).Str("url", sub.ProductURL).Msg("Unsubscribed")
	writeHTML(w, http.StatusOK, notifier.BuildUnsubscribePage(productName))
}

// GetProduct handles GET /api/v1/products?url= and returns the tracked
// state of one product
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeError(w, http.StatusBadRequest, "'url' query parameter is required")
		return
	}

	product, err := h.productRepo.GetProductByURL(url)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// sendWelcome picks the best available display name and sends the
// welcome email. The name falls back to the subscriber's own hint, then
// to the page's domain, so a raw truncated URL never lands in an email.
func (h *Handlers) sendWelcome(email string, result *scraper.Result, productURL, unsubscribeURL, nameHint string) error {
	var name string
	var price *float64
	currency := "USD"

	switch {
	case result != nil && result.Name != "":
		name = result.Name
	case nameHint != "":
		name = nameHint
	default:
		name = domainOf(productURL)
	}
	if result != nil {
		price = &result.Price
		currency = result.Currency
	}

	msg := notifier.BuildWelcomeEmail(name, productURL, unsubscribeURL, price, currency)
	return h.mailer.Send(email, msg)
}

func (h *Handlers) buildUnsubscribeURL(token string) string {
	return fmt.Sprintf("%s/unsubscribe?token=%s", strings.TrimRight(h.baseURL, "/"), token)
}

func domainOf(rawURL string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return truncate(rawURL, 60)
	}
	return trimmed
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
