package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"backend-flightstats/internal/stats"

	"github.com/redis/go-redis/v9"
)

const updatesChannel = "flightstats:updates"

// Hub fans freshly persisted statistics out to live subscribers. When a
// redis client is configured, updates are also published on a channel and
// remote publications are forwarded to local subscribers, so readers
// attached to another instance see them too.
type Hub struct {
	redis   *redis.Client
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, 16)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Publish delivers a freshly persisted record to every subscriber. Slow
// subscribers are skipped rather than blocking the aggregation cycle.
func (h *Hub) Publish(record stats.StatsRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		log.Printf("stream marshal error: %v", err)
		return
	}

	h.broadcast(payload)

	if h.redis != nil {
		if err := h.redis.Publish(context.Background(), updatesChannel, payload).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), updatesChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcast([]byte(msg.Payload))
	}
}
