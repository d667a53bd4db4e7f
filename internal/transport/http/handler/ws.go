package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

// WSHandler обрабатывает websocket-подписки
type WSHandler struct {
	hub *ws.Hub
}

// NewWSHandler создает новый handler websocket-подписок
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// SubscribeBookings обрабатывает GET /ws/bookings/{placeId}/{date}
func (h *WSHandler) SubscribeBookings(w http.ResponseWriter, r *http.Request) {
	placeID, ok := pathUUID(r, "placeId")
	if !ok {
		respondInvalidID(w)
		return
	}

	date := chi.URLParam(r, "date")

	h.hub.Subscribe(w, r, ws.BookingTopic(placeID, date))
}

// SubscribeNotifications обрабатывает GET /ws/notifications/{userId}
func (h *WSHandler) SubscribeNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userId")
	if !ok {
		respondInvalidID(w)
		return
	}

	h.hub.Subscribe(w, r, ws.NotificationTopic(userID))
}
