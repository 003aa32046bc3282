package pgsql

import (
	"context"
	"errors"
	"sync"
	"time"

	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listenWaitTimeout = 30 * time.Second
	reconnectDelay    = time.Second
	unlistenTimeout   = 5 * time.Second
)

// RateListener turns exchange-rate notifications into recalculation requests.
// Rate writes made by other processes reach this one through the channel.
type RateListener struct {
	pool      *pgxpool.Pool
	channel   string
	scheduler portssvc.RecalculationScheduler

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRateListener creates a listener for channel.
func NewRateListener(pool *pgxpool.Pool, channel string, scheduler portssvc.RecalculationScheduler) *RateListener {
	return &RateListener{pool: pool, channel: channel, scheduler: scheduler}
}

// Start launches the listen loop. Calling Start twice is a no-op.
func (l *RateListener) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	go l.listenLoop(ctx)
}

// Stop ends the loop and waits for it to exit.
func (l *RateListener) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	l.wg.Wait()
}

func (l *RateListener) listenLoop(ctx context.Context) {
	defer l.wg.Done()
	log := logger.FromContext(ctx).WithComponent("rate_listener")

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := l.pool.Acquire(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Errorw("failed to acquire connection for LISTEN", "error", err)
				sleepCtx(ctx, reconnectDelay)
			}
			continue
		}

		if _, err := conn.Exec(ctx, listenSQL(l.channel)); err != nil {
			unsubscribe(conn.Conn(), l.channel)
			conn.Release()
			if ctx.Err() == nil {
				log.Errorw("failed to LISTEN", "channel", l.channel, "error", err)
				sleepCtx(ctx, reconnectDelay)
			}
			continue
		}

		log.Infow("listening for exchange rate changes", "channel", l.channel)
		err = l.waitForNotifications(ctx, conn.Conn())
		unsubscribe(conn.Conn(), l.channel)
		conn.Release()
		if err != nil && ctx.Err() == nil {
			log.Warnw("notification connection lost, reconnecting", "error", err)
			sleepCtx(ctx, reconnectDelay)
		}
	}
}

// waitForNotifications returns nil on shutdown and the connection error otherwise.
func (l *RateListener) waitForNotifications(ctx context.Context, conn *pgx.Conn) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		waitCtx, cancel := context.WithTimeout(ctx, listenWaitTimeout)
		n, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			return err
		}
		l.handleNotification(ctx, n)
	}
}

func (l *RateListener) handleNotification(ctx context.Context, n *pgconn.Notification) {
	if n == nil || n.Channel != l.channel {
		return
	}
	logger.Debug(ctx, "exchange rate changed", "channel", n.Channel, "currency", n.Payload)
	l.scheduler.Schedule(ctx)
}

// subscribedConn is the part of *pgx.Conn needed to drop a LISTEN.
type subscribedConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	IsClosed() bool
	Close(ctx context.Context) error
}

var _ subscribedConn = (*pgx.Conn)(nil)

// unsubscribe leaves conn with no LISTEN registration for channel so it can go
// back to the pool. A connection that cannot run UNLISTEN is closed, and the
// pool drops closed connections on release.
func unsubscribe(conn subscribedConn, channel string) {
	if conn.IsClosed() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), unlistenTimeout)
	defer cancel()
	if _, err := conn.Exec(ctx, unlistenSQL(channel)); err != nil {
		_ = conn.Close(ctx)
	}
}

func listenSQL(channel string) string {
	return "LISTEN " + pgx.Identifier{channel}.Sanitize()
}

func unlistenSQL(channel string) string {
	return "UNLISTEN " + pgx.Identifier{channel}.Sanitize()
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
