package notifier

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Financ3/price-drop-notifier/models"
)

// EmailMessage is a rendered email with HTML and plain-text bodies
type EmailMessage struct {
	Subject string
	HTML    string
	Text    string
}

// Shared layout for all outgoing emails and unsubscribe pages
const baseHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f0f1a; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #e2e8f0; }
    .wrapper { max-width: 580px; margin: 40px auto; background: #1a1a2e; border-radius: 16px; overflow: hidden; border: 1px solid rgba(99,102,241,0.3); }
    .header { background: linear-gradient(135deg, #6366f1 0%, #8b5cf6 100%); padding: 32px 40px; text-align: center; }
    .header .logo { font-size: 13px; font-weight: 700; letter-spacing: 3px; text-transform: uppercase; color: rgba(255,255,255,0.75); margin-bottom: 8px; }
    .header h1 { margin: 0; font-size: 24px; font-weight: 800; color: #fff; }
    .body { padding: 36px 40px; }
    .body p { margin: 0 0 16px; line-height: 1.65; color: #cbd5e1; font-size: 15px; }
    .product-card { background: rgba(99,102,241,0.08); border: 1px solid rgba(99,102,241,0.25); border-radius: 12px; padding: 20px 24px; margin: 24px 0; }
    .product-name { font-size: 16px; font-weight: 600; color: #e2e8f0; margin: 0 0 12px; }
    .price-row { display: flex; align-items: center; gap: 16px; flex-wrap: wrap; }
    .price-badge { display: inline-block; background: linear-gradient(135deg, #6366f1, #8b5cf6); color: #fff; font-size: 22px; font-weight: 800; padding: 6px 18px; border-radius: 8px; }
    .price-old { text-decoration: line-through; color: #64748b; font-size: 18px; }
    .savings-badge { background: rgba(34,197,94,0.15); border: 1px solid rgba(34,197,94,0.4); color: #4ade80; font-size: 13px; font-weight: 700; padding: 4px 12px; border-radius: 20px; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #6366f1, #8b5cf6); color: #fff !important; text-decoration: none; font-weight: 700; font-size: 15px; padding: 14px 32px; border-radius: 10px; margin: 8px 8px 8px 0; }
    .footer { border-top: 1px solid rgba(255,255,255,0.06); padding: 24px 40px; text-align: center; font-size: 12px; color: #475569; line-height: 1.6; }
    .footer a { color: #6366f1; text-decoration: none; }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="header">
      <div class="logo">Price Drop Notifier</div>
      <h1>{{.Header}}</h1>
    </div>
    <div class="body">
      {{.Body}}
    </div>
    <div class="footer">
      {{.Footer}}
    </div>
  </div>
</body>
</html>`

var baseTemplate = template.Must(template.New("base").Parse(baseHTML))

type basePage struct {
	Title  string
	Header string
	Body   template.HTML
	Footer template.HTML
}

func renderBase(page basePage) string {
	var b strings.Builder
	if err := baseTemplate.Execute(&b, page); err != nil {
		return ""
	}
	return b.String()
}

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
}

// FormatPrice renders a price with its currency symbol and thousands
// separators, e.g. 1234.5 USD -> "$1,234.50"
func FormatPrice(price float64, currency string) string {
	sym, ok := currencySymbols[currency]
	if !ok {
		sym = "$"
	}

	whole := fmt.Sprintf("%.2f", price)
	dot := strings.Index(whole, ".")
	intPart, fracPart := whole[:dot], whole[dot:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sym + strings.Join(groups, ",") + fracPart
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// BuildWelcomeEmail renders the subscription-confirmed email. price may
// be nil for JS-rendered pages where the initial fast scrape found
// nothing; the email then promises a check on the next scheduled run.
func BuildWelcomeEmail(productName, productURL, unsubscribeURL string, price *float64, currency string) *EmailMessage {
	var subject, priceBlock, textPrice string
	if price != nil {
		priceStr := FormatPrice(*price, currency)
		priceBlock = fmt.Sprintf(`
        <div class="price-row">
          <span class="price-badge">%s</span>
          <span style="color:#94a3b8;font-size:13px;">current price</span>
        </div>`, esc(priceStr))
		subject = fmt.Sprintf("Tracking %s — Currently %s", productName, priceStr)
		textPrice = fmt.Sprintf("Current price: %s\n", priceStr)
	} else {
		priceBlock = `
        <div style="color:#94a3b8;font-size:13px;margin-top:4px;">
          We’ll check the price on our next scheduled run and email you the moment it drops.
        </div>`
		subject = fmt.Sprintf("You’re now tracking %s", productName)
		textPrice = "Price will be checked on our next scheduled run.\n"
	}

	body := fmt.Sprintf(`
      <p>You're all set! We'll email you as soon as the price drops on:</p>
      <div class="product-card">
        <div class="product-name">%s</div>
        %s
      </div>
      <a href="%s" class="cta-button">View Product</a>`,
		esc(productName), priceBlock, esc(productURL))

	footer := fmt.Sprintf(`You subscribed to price alerts for <em>%s</em>.<br>No longer interested? <a href="%s">Unsubscribe</a>`,
		esc(productName), esc(unsubscribeURL))

	text := fmt.Sprintf("Price Drop Notifier — Subscription confirmed\n\n"+
		"You're tracking: %s\n%sProduct URL: %s\n\n"+
		"We'll email you when the price drops.\n\nUnsubscribe: %s",
		productName, textPrice, productURL, unsubscribeURL)

	return &EmailMessage{
		Subject: subject,
		HTML: renderBase(basePage{
			Title:  "You're tracking a product",
			Header: "You're now tracking this product!",
			Body:   template.HTML(body),
			Footer: template.HTML(footer),
		}),
		Text: text,
	}
}

// BuildPriceDropEmail renders the price-drop alert email for one event
func BuildPriceDropEmail(evt models.PriceDropEvent, unsubscribeURL string) *EmailMessage {
	oldStr := FormatPrice(evt.OldPrice, evt.Currency)
	newStr := FormatPrice(evt.NewPrice, evt.Currency)
	savingsStr := FormatPrice(evt.Savings(), evt.Currency)
	pct := int(evt.SavingsPercent() + 0.5)

	body := fmt.Sprintf(`
      <p>Great news — the price just dropped on a product you're watching!</p>
      <div class="product-card">
        <div class="product-name">%s</div>
        <div class="price-row">
          <span class="price-old">%s</span>
          <span class="price-badge">%s</span>
          <span class="savings-badge">Save %s (%d%% off)</span>
        </div>
      </div>
      <a href="%s" class="cta-button">View Deal</a>`,
		esc(evt.ProductName), esc(oldStr), esc(newStr), esc(savingsStr), pct, esc(evt.ProductURL))

	footer := fmt.Sprintf(`You subscribed to price alerts for <em>%s</em>.<br>Want to stop receiving alerts? <a href="%s">Unsubscribe</a>`,
		esc(evt.ProductName), esc(unsubscribeURL))

	text := fmt.Sprintf("Price Drop Alert — %s\n\n"+
		"Was: %s\nNow: %s  (save %s, %d%% off)\n\n"+
		"View product: %s\n\nUnsubscribe: %s",
		evt.ProductName, oldStr, newStr, savingsStr, pct, evt.ProductURL, unsubscribeURL)

	return &EmailMessage{
		Subject: fmt.Sprintf("Price Drop! %s is now %s (was %s)", evt.ProductName, newStr, oldStr),
		HTML: renderBase(basePage{
			Title:  "Price Drop: " + evt.ProductName,
			Header: "Price dropped to " + newStr + "!",
			Body:   template.HTML(body),
			Footer: template.HTML(footer),
		}),
		Text: text,
	}
}

// BuildUnsubscribePage renders the HTML confirmation page returned by
// the unsubscribe endpoint
func BuildUnsubscribePage(productName string) string {
	nameBlurb := ""
	if productName != "" {
		nameBlurb = fmt.Sprintf(" from <strong>%s</strong> price alerts", esc(productName))
	}

	body := fmt.Sprintf(`
      <p>You've been successfully unsubscribed%s.</p>
      <p>You will no longer receive price drop notifications for this product.
         If you change your mind, just visit the app to subscribe again.</p>`, nameBlurb)

	return renderBase(basePage{
		Title:  "Unsubscribed",
		Header: "You've been unsubscribed",
		Body:   template.HTML(body),
		Footer: template.HTML("© Price Drop Notifier"),
	})
}

// BuildAlreadyUnsubscribedPage renders the page shown for unknown or
// already-used unsubscribe tokens
func BuildAlreadyUnsubscribedPage() string {
	return renderBase(basePage{
		Title:  "Already unsubscribed",
		Header: "Nothing to do",
		Body:   template.HTML("<p>This unsubscribe link has already been used or is invalid.</p>"),
		Footer: template.HTML("© Price Drop Notifier"),
	})
}
