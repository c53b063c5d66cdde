package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	SeatTaken    = "taken"
	SeatReleased = "released"
	SeatDeparted = "departed"
)

// SeatEvent is pushed to websocket subscribers of a journey.
type SeatEvent struct {
	Journey uint   `json:"journey"`
	Action  string `json:"action"`
	Cargo   int    `json:"cargo,omitempty"`
	Seat    int    `json:"seat,omitempty"`
}

// SeatEvents fans seat changes out to live subscribers. Publish never fails
// the caller; delivery problems are logged.
type SeatEvents interface {
	Publish(ctx context.Context, event SeatEvent)
	Subscribe(ctx context.Context, journeyID uint) (<-chan []byte, func(), error)
}

func seatChannel(journeyID uint) string {
	return fmt.Sprintf("journey:%d:seats", journeyID)
}

type RedisSeatEvents struct {
	client *redis.Client
}

func NewRedisSeatEvents(addr, password string) *RedisSeatEvents {
	return &RedisSeatEvents{client: redis.NewClient(&redis.Options{Addr: addr, Password: password})}
}

func (r *RedisSeatEvents) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSeatEvents) Close() error {
	return r.client.Close()
}

func (r *RedisSeatEvents) Publish(ctx context.Context, event SeatEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("seat event encode: %v", err)
		return
	}
	if err := r.client.Publish(ctx, seatChannel(event.Journey), payload).Err(); err != nil {
		log.Printf("seat event publish journey=%d: %v", event.Journey, err)
	}
}

func (r *RedisSeatEvents) Subscribe(ctx context.Context, journeyID uint) (<-chan []byte, func(), error) {
	pubsub := r.client.Subscribe(ctx, seatChannel(journeyID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}
	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			default:
			}
		}
	}()
	return out, func() { pubsub.Close() }, nil
}

// LocalSeatEvents delivers events inside the process. It is used when no
// Redis address is configured.
type LocalSeatEvents struct {
	mu      sync.Mutex
	clients map[uint]map[chan []byte]struct{}
}

func NewLocalSeatEvents() *LocalSeatEvents {
	return &LocalSeatEvents{clients: make(map[uint]map[chan []byte]struct{})}
}

func (l *LocalSeatEvents) Publish(_ context.Context, event SeatEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("seat event encode: %v", err)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.clients[event.Journey] {
		select {
		case ch <- payload:
		default:
			// slow subscriber, drop
		}
	}
}

func (l *LocalSeatEvents) Subscribe(_ context.Context, journeyID uint) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 16)
	l.mu.Lock()
	if l.clients[journeyID] == nil {
		l.clients[journeyID] = make(map[chan []byte]struct{})
	}
	l.clients[journeyID][ch] = struct{}{}
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.clients[journeyID], ch)
			if len(l.clients[journeyID]) == 0 {
				delete(l.clients, journeyID)
			}
			l.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
