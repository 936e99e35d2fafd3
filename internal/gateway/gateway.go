// Package gateway runs stored procedure calls inside request-scoped database
// sessions.
//
// Every request gets exactly one dedicated connection. Writes run in a
// single transaction that is committed only when the callback returns nil
// and rolled back on any error or panic. The connection is released on
// every exit path. Failures come back as *Error carrying a Kind and the
// driver's message unchanged. There are no retries.
package gateway

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"chagual/internal/database"
	"chagual/internal/logging"
	"chagual/internal/metrics"
)

type Gateway struct {
	db          *gorm.DB
	dialect     database.Dialect
	callTimeout time.Duration

	acquired atomic.Int64
	released atomic.Int64
}

type Option func(*Gateway)

// WithCallTimeout bounds every session; zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.callTimeout = d }
}

func New(db *gorm.DB, dialect database.Dialect, opts ...Option) *Gateway {
	g := &Gateway{db: db, dialect: dialect}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stats reports session accounting since start.
type Stats struct {
	Acquired int64
	Released int64
}

func (s Stats) Open() int64 { return s.Acquired - s.Released }

func (g *Gateway) Stats() Stats {
	return Stats{Acquired: g.acquired.Load(), Released: g.released.Load()}
}

func (g *Gateway) Dialect() database.Dialect { return g.dialect }

// Write runs fn in a transaction on a dedicated connection.
func (g *Gateway) Write(ctx context.Context, op string, fn func(s *Session) error) error {
	return g.withSession(ctx, op, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			return fn(&Session{db: tx, dialect: g.dialect, op: op})
		}, g.dialect.TxOptions())
	})
}

// Read runs fn on a dedicated connection without a transaction.
func (g *Gateway) Read(ctx context.Context, op string, fn func(s *Session) error) error {
	return g.withSession(ctx, op, func(conn *gorm.DB) error {
		return fn(&Session{db: conn, dialect: g.dialect, op: op})
	})
}

func (g *Gateway) withSession(ctx context.Context, op string, fn func(conn *gorm.DB) error) (err error) {
	if g.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.callTimeout)
		defer cancel()
	}

	g.acquired.Add(1)
	metrics.SessionsAcquired.Inc()
	metrics.SessionsOpen.Inc()
	start := time.Now()

	defer func() {
		g.released.Add(1)
		metrics.SessionsReleased.Inc()
		metrics.SessionsOpen.Dec()
		metrics.ProcedureDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

		if err != nil {
			kind := KindOf(err)
			metrics.ProcedureErrors.WithLabelValues(op, string(kind)).Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("op", op).Str("kind", string(kind)).Msg("gateway call failed")
		}
	}()

	err = g.db.WithContext(ctx).Connection(fn)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		// The driver may report an aborted call with its own error.
		return &Error{Kind: KindUnavailable, Op: op, Err: err}
	}
	return wrap(op, err)
}

// Session is the connection (and transaction, for writes) of one request.
type Session struct {
	db      *gorm.DB
	dialect database.Dialect
	op      string
}

// Exec calls a procedure that returns no rows. It reports rows affected,
// or -1 when the store does not count them for procedure calls.
func (s *Session) Exec(call database.Call) (int64, error) {
	stmt, err := s.dialect.Statement(call, false)
	if err != nil {
		return 0, err
	}
	res := s.db.Exec(stmt, call.Args()...)
	if res.Error != nil {
		return 0, res.Error
	}
	if !s.dialect.CountsRows() {
		return -1, nil
	}
	return res.RowsAffected, nil
}

// Query calls a procedure and returns its first result set.
func (s *Session) Query(call database.Call) ([]Row, error) {
	stmt, err := s.dialect.Statement(call, true)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Raw(stmt, call.Args()...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// LastInsertID reads the id generated by the previous call on this connection.
func (s *Session) LastInsertID() (int64, error) {
	var id int64
	if err := s.db.Raw(s.dialect.LastInsertIDQuery()).Row().Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
