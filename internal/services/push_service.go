package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PushNotification is one message addressed to one user's devices.
type PushNotification struct {
	ID     string `json:"id"`
	UserID uint   `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PushNotifier accepts notifications for best-effort delivery.
type PushNotifier interface {
	Notify(ctx context.Context, notifications []PushNotification) error
}

// PushQueue enqueues notifications on a redis list for cmd/pushworker.
type PushQueue struct {
	rdb *redis.Client
	key string
}

// NewPushQueue creates a PushQueue. A nil client turns Notify into a logged no-op.
func NewPushQueue(rdb *redis.Client, key string) *PushQueue {
	return &PushQueue{rdb: rdb, key: key}
}

// Notify pushes every notification onto the queue in one round trip.
func (q *PushQueue) Notify(ctx context.Context, notifications []PushNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	if q.rdb == nil {
		log.Printf("[Push] Redis not configured, dropping %d notification(s)", len(notifications))
		return nil
	}

	pipe := q.rdb.Pipeline()
	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		raw, err := json.Marshal(n)
		if err != nil {
			return err
		}
		pipe.LPush(ctx, q.key, raw)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Pop blocks up to timeout for the oldest queued notification. It returns
// nil when the queue stayed empty.
func (q *PushQueue) Pop(ctx context.Context, timeout time.Duration) (*PushNotification, error) {
	if q.rdb == nil {
		return nil, errors.New("push queue has no redis client")
	}

	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of %d elements", len(res))
	}

	var n PushNotification
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		return nil, fmt.Errorf("decode push notification: %w", err)
	}
	return &n, nil
}

// PushGateway delivers notifications to the device push provider.
type PushGateway struct {
	url    string
	client *http.Client
}

// NewPushGateway creates a PushGateway.
func NewPushGateway(url string, timeout time.Duration) *PushGateway {
	return &PushGateway{url: url, client: &http.Client{Timeout: timeout}}
}

// Deliver posts a single notification as JSON.
func (g *PushGateway) Deliver(ctx context.Context, n PushNotification) error {
	if g.url == "" {
		log.Println("[Push] Gateway URL not configured")
		return nil
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// dispatchPush hands notifications to notifier without waiting for the result.
func dispatchPush(notifier PushNotifier, notifications []PushNotification) {
	if len(notifications) == 0 {
		return
	}
	go func() {
		if err := notifier.Notify(context.Background(), notifications); err != nil {
			log.Printf("[Push] Failed to enqueue %d notification(s): %v", len(notifications), err)
		}
	}()
}
