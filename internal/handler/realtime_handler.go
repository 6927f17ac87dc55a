package handler

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"annonsplats/internal/domain"
	"annonsplats/internal/metrics"
	"annonsplats/internal/middleware"
	"annonsplats/internal/realtime"
	"annonsplats/internal/service/message"
	"annonsplats/internal/service/notification"
)

const (
	applicationLocalsKey = "application"
	pingInterval         = 30 * time.Second
	writeWait            = 10 * time.Second
)

type RealtimeHandler struct {
	msgService   message.Service
	notifService notification.Service
	broker       realtime.Broker
	logger       *zap.Logger
}

func NewRealtimeHandler(msgService message.Service, notifService notification.Service, broker realtime.Broker, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		msgService:   msgService,
		notifService: notifService,
		broker:       broker,
		logger:       logger.Named("realtime"),
	}
}

func (h *RealtimeHandler) RequireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// AuthorizeThread rejects the upgrade unless the caller participates in the
// application named by :id.
func (h *RealtimeHandler) AuthorizeThread(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.msgService.Authorize(c.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}

	c.Locals(applicationLocalsKey, app)
	return c.Next()
}

// Messages forwards rows inserted into one application's thread. Each
// viewer only receives the messages they are allowed to see.
func (h *RealtimeHandler) Messages(conn *websocket.Conn) {
	viewerID, _ := conn.Locals(middleware.UserIDContextKey).(uuid.UUID)
	app, _ := conn.Locals(applicationLocalsKey).(*domain.Application)
	if app == nil {
		_ = conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := h.broker.Subscribe(ctx, realtime.MessagesTopic(app.ID))
	if err != nil {
		h.logger.Error("failed to subscribe to thread", zap.String("application_id", app.ID.String()), zap.Error(err))
		_ = conn.Close()
		return
	}
	defer sub.Close()

	gauge := metrics.RealtimeConnections.WithLabelValues("messages")
	gauge.Inc()
	defer gauge.Dec()

	go drain(conn, cancel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ping(conn); err != nil {
				return
			}
		case payload, ok := <-sub.C():
			if !ok {
				return
			}
			evt, ok := visibleEvent(payload, viewerID, app)
			if !ok {
				continue
			}
			if err := writeJSON(conn, evt); err != nil {
				return
			}
		}
	}
}

// visibleEvent decodes a thread payload and reports whether viewerID may
// receive it.
func visibleEvent(payload []byte, viewerID uuid.UUID, app *domain.Application) (realtime.Event, bool) {
	evt, err := realtime.DecodeEvent(payload)
	if err != nil || evt.Message == nil {
		return realtime.Event{}, false
	}
	return evt, evt.Message.VisibleTo(viewerID, app)
}

// Notifications pushes the caller's badge every time it changes.
func (h *RealtimeHandler) Notifications(conn *websocket.Conn) {
	userID, _ := conn.Locals(middleware.UserIDContextKey).(uuid.UUID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	badges, unsubscribe := h.notifService.Subscribe(userID)
	defer unsubscribe()

	gauge := metrics.RealtimeConnections.WithLabelValues("notifications")
	gauge.Inc()
	defer gauge.Dec()

	go drain(conn, cancel)

	// The refreshed value reaches this connection through the subscription.
	if _, err := h.notifService.Refresh(ctx, userID); err != nil {
		h.logger.Warn("failed to refresh badge", zap.String("user_id", userID.String()), zap.Error(err))
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ping(conn); err != nil {
				return
			}
		case badge, ok := <-badges:
			if !ok {
				return
			}
			if err := writeJSON(conn, realtime.Event{Type: realtime.EventBadge, Badge: &badge}); err != nil {
				return
			}
		}
	}
}

// drain reads until the client goes away. Clients never send anything we
// act on, but reading is what surfaces close frames.
func drain(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func ping(conn *websocket.Conn) error {
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
