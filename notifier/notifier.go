package notifier

import (
	"github.com/rs/zerolog/log"

	"github.com/Financ3/price-drop-notifier/models"
	"github.com/Financ3/price-drop-notifier/repository"
)

// Notifier is the fan-out layer: one price-drop event becomes N
// individual emails, one per active subscriber of that product. Events
// arrive on a buffered channel so the scheduler never blocks on email
// delivery.
type Notifier struct {
	events   chan models.PriceDropEvent
	subRepo  *repository.SubscriptionRepository
	sender   EmailSender
	stopChan chan struct{}
}

// NewNotifier creates a notifier with the given event buffer size
func NewNotifier(subRepo *repository.SubscriptionRepository, sender EmailSender, buffer int) *Notifier {
	return &Notifier{
		events:   make(chan models.PriceDropEvent, buffer),
		subRepo:  subRepo,
		sender:   sender,
		stopChan: make(chan struct{}),
	}
}

// Start launches the event worker
func (n *Notifier) Start() {
	go n.run()
	log.Info().Msg("Notifier started")
}

// Stop stops the event worker
func (n *Notifier) Stop() {
	close(n.stopChan)
	log.Info().Msg("Notifier stopping...")
}

// PublishPriceDrop queues a price-drop event for delivery. Events are
// dropped with a log line when the buffer is full rather than blocking
// the scheduler.
func (n *Notifier) PublishPriceDrop(evt models.PriceDropEvent) {
	select {
	case n.events <- evt:
	default:
		log.Error().Str("url", evt.ProductURL).Msg("Event buffer full, dropping price-drop event")
	}
}

func (n *Notifier) run() {
	for {
		select {
		case evt := <-n.events:
			n.notifySubscribers(evt)
		case <-n.stopChan:
			return
		}
	}
}

// notifySubscribers emails every active subscriber of the dropped
// product. Per-recipient failures are logged and never abort the batch.
func (n *Notifier) notifySubscribers(evt models.PriceDropEvent) {
	log.Info().
		Str("product", evt.ProductName).
		Float64("old_price", evt.OldPrice).
		Float64("new_price", evt.NewPrice).
		Msg("Processing price drop")

	subscribers, err := n.subRepo.GetActiveSubscribers(evt.ProductURL)
	if err != nil {
		log.Error().Err(err).Str("url", evt.ProductURL).Msg("Failed to load subscribers")
		return
	}
	log.Info().Int("count", len(subscribers)).Str("url", evt.ProductURL).Msg("Found active subscribers")

	sent, failed := 0, 0
	for _, sub := range subscribers {
		if sub.Email == "" {
			continue
		}

		msg := BuildPriceDropEmail(evt, sub.UnsubscribeURL)
		if err := n.sender.Send(sub.Email, msg); err != nil {
			failed++
			log.Error().Err(err).Str("email", sub.Email).Msg("Failed to send price-drop email")
			continue
		}
		sent++
	}

	log.Info().Int("sent", sent).Int("failed", failed).Msg("Notification run complete")
}
