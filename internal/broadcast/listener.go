package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Handler receives decoded events from a channel the listener is subscribed to.
type Handler func(channel string, e Envelope)

// Listener holds one dedicated connection on LISTEN and feeds notifications
// to a handler until stopped.
type Listener struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	channel string
	handler Handler

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewListener(pool *pgxpool.Pool, logger *zap.Logger, channel string, handler Handler) *Listener {
	return &Listener{
		pool:    pool,
		logger:  logger,
		channel: channel,
		handler: handler,
	}
}

// Start subscribes synchronously, so events sent after it returns are seen,
// then consumes notifications in the background.
func (l *Listener) Start(ctx context.Context) error {
	ctx, l.cancel = context.WithCancel(ctx)

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		l.cancel()
		return err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		conn.Release()
		l.cancel()
		return err
	}

	l.logger.Info("broadcast listener started", zap.String("channel", l.channel))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer conn.Release()

		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					l.logger.Error("broadcast listener connection lost", zap.Error(err))
				}
				return
			}

			var e Envelope
			if err := json.Unmarshal([]byte(n.Payload), &e); err != nil {
				l.logger.Warn("dropping malformed broadcast payload", zap.Error(err))
				continue
			}
			l.handler(n.Channel, e)
		}
	}()

	return nil
}

func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
	l.logger.Info("broadcast listener stopped", zap.String("channel", l.channel))
}
