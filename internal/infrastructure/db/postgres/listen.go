package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Result is one delivery of a live query: the full current result set of
// the query, or a terminal error after which the channel is closed.
type Result[T any] struct {
	Value T
	Err   error
}

// Subscribe turns a plain query into a live one. It holds a dedicated
// connection on LISTEN <channel>, pushes an initial snapshot immediately,
// and re-runs the query after every notification, always delivering the
// full result set rather than a diff. The subscription ends when ctx is
// cancelled (channel closed silently) or on an error (delivered as the
// final Result, then closed). Restarting after an error is the caller's
// decision.
//
// The schema is expected to notify the channel from row triggers, e.g.:
//
//	CREATE FUNCTION notify_shares_changed() RETURNS trigger AS $$
//	BEGIN PERFORM pg_notify('shares_changed', ''); RETURN NULL; END;
//	$$ LANGUAGE plpgsql;
//	CREATE TRIGGER shares_changed AFTER INSERT OR UPDATE OR DELETE
//	ON shares FOR EACH STATEMENT EXECUTE FUNCTION notify_shares_changed();
func Subscribe[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	channel string,
	query func(context.Context) (T, error),
) (<-chan Result[T], error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err = conn.Exec(ctx, "LISTEN "+sanitizeIdent(channel)); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}

	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		defer conn.Release()

		for {
			v, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				out <- Result[T]{Err: err}
				return
			}
			select {
			case out <- Result[T]{Value: v}:
			case <-ctx.Done():
				return
			}

			if _, err = conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				out <- Result[T]{Err: err}
				return
			}
		}
	}()

	return out, nil
}

// LISTEN takes an identifier, not a bind parameter.
func sanitizeIdent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	return string(out)
}
