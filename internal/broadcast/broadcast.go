// Package broadcast provides a transient publish/subscribe channel on top of
// Postgres NOTIFY/LISTEN. Events are fire-and-forget: nothing is persisted
// and a send with no listener is not an error.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SystemChannel carries cross-component notifications such as task.created.
const SystemChannel = "system"

// Envelope is the wire shape of one broadcast event.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type Broadcaster struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Broadcaster {
	return &Broadcaster{pool: pool}
}

// Channel returns a handle for publishing on a named channel. Handles are
// cheap; callers may create one per send.
func (b *Broadcaster) Channel(name string) *Channel {
	return &Channel{name: name, pool: b.pool}
}

type Channel struct {
	name string
	pool *pgxpool.Pool
}

// Send publishes one event. Delivery is best-effort: the notification is
// dropped once every current listener has seen it, or immediately if there
// are none.
func (c *Channel) Send(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	env, err := json.Marshal(Envelope{Event: event, Payload: data})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	_, err = c.pool.Exec(ctx, "SELECT pg_notify($1, $2)", c.name, string(env))
	return err
}
