package service

import (
	"context"
	"time"

	"restaurant-pos/internal/events"
	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/rs/zerolog"
)

// publishTimeout bounds a single event publish.
const publishTimeout = 3 * time.Second

type notifier struct {
	socketRepo repository.SocketRepository
	publisher  events.Publisher
	settings   Settings
	logger     zerolog.Logger
}

// NewNotifier creates a notifier reading sockets from socketRepo and
// publishing through publisher.
func NewNotifier(socketRepo repository.SocketRepository, publisher events.Publisher, settings Settings, logger zerolog.Logger) Notifier {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &notifier{
		socketRepo: socketRepo,
		publisher:  publisher,
		settings:   settings,
		logger:     logger.With().Str("service", "notifier").Logger(),
	}
}

func (n *notifier) Lookup(ctx context.Context, guestID int64) *string {
	socketID, err := n.socketRepo.GetSocketID(ctx, guestID)
	if err != nil {
		n.logger.Warn().Err(err).Int64("guest_id", guestID).Msg("socket lookup failed")
		return nil
	}
	return socketID
}

func (n *notifier) Announce(ctx context.Context, eventType model.OrderEventType, guestID int64, socketID *string, orders []model.Order) {
	event := model.NewOrderEvent(eventType, guestID, socketID, orders, n.settings.now())

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn().
			Err(err).
			Str("type", string(eventType)).
			Int64("guest_id", guestID).
			Msg("failed to publish order event")
	}
}
