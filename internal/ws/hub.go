package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub раздает события по топикам: одно соединение подписано ровно на один топик
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

// NewHub создает новый хаб
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subscribers: make(map[string][]*websocket.Conn),
	}
}

// BookingTopic — топик обновлений расписания площадки на день
func BookingTopic(placeID uuid.UUID, date string) string {
	return "bookings/" + placeID.String() + "/" + date
}

// NotificationTopic — топик персональных уведомлений пользователя
func NotificationTopic(userID uuid.UUID) string {
	return "notifications/" + userID.String()
}

// Subscribe апгрейдит соединение и держит его до отключения клиента
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, topic string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("topic", topic).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.subscribers[topic] = append(h.subscribers[topic], conn)
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.subscribers[topic]
	remaining := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.subscribers, topic)
	} else {
		h.subscribers[topic] = remaining
	}
	h.mu.Unlock()

	conn.Close()
}

// Publish сериализует событие и рассылает его подписчикам топика;
// соединения с ошибкой записи закрываются и выбывают
func (h *Hub) Publish(topic string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("topic", topic).Msg("failed to marshal ws event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[topic]
	remaining := conns[:0]
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			continue
		}
		remaining = append(remaining, conn)
	}
	if len(remaining) == 0 {
		delete(h.subscribers, topic)
	} else {
		h.subscribers[topic] = remaining
	}
}

// SubscriberCount возвращает число активных подписчиков топика
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[topic])
}
