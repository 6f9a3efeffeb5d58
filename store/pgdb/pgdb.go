package pgdb

import (
	"context"
	"github.com/alexandre-normand/cookiebot/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"time"
)

const (
	maxConns       = 10
	connectTimeout = 5 * time.Second
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS cookies (
		user_id TEXT PRIMARY KEY,
		cookies BIGINT NOT NULL DEFAULT 0
	)`
	createIndexSQL = `CREATE INDEX IF NOT EXISTS cookies_cookies_desc_idx ON cookies (cookies DESC)`

	selectSQL    = `SELECT cookies FROM cookies WHERE user_id = $1`
	incrementSQL = `INSERT INTO cookies (user_id, cookies) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET cookies = cookies.cookies + EXCLUDED.cookies`
	setSQL = `INSERT INTO cookies (user_id, cookies) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET cookies = EXCLUDED.cookies`
	scanSQL = `SELECT user_id, cookies FROM cookies ORDER BY cookies DESC, user_id ASC OFFSET $1 LIMIT $2`
)

// querier is the subset of *pgxpool.Pool used by PgDB
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PgDB implements the store.RecordStorer interface on top of a postgres table
type PgDB struct {
	db querier
}

// New opens a connection pool to the database at databaseURL, checks connectivity and creates the
// cookies table if it doesn't exist yet
func New(ctx context.Context, databaseURL string) (pgdb *PgDB, err error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid postgres database url")
	}
	cfg.MaxConns = maxConns

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres pool")
	}

	if err = pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	return newWithQuerier(ctx, pool)
}

// newWithQuerier returns a PgDB using the given querier after making sure the schema exists
func newWithQuerier(ctx context.Context, q querier) (pgdb *PgDB, err error) {
	pgdb = &PgDB{db: q}

	for _, stmt := range []string{createTableSQL, createIndexSQL} {
		if _, err = q.Exec(ctx, stmt); err != nil {
			q.Close()
			return nil, errors.Wrap(err, "failed to create cookies schema")
		}
	}

	return pgdb, nil
}

// ReadOrDefault returns the record for userID or a record with a zero balance if the row doesn't exist
func (pgdb *PgDB) ReadOrDefault(ctx context.Context, userID string) (record store.Record, err error) {
	record.UserID = userID

	err = pgdb.db.QueryRow(ctx, selectSQL, userID).Scan(&record.Cookies)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Record{UserID: userID}, nil
	}

	if err != nil {
		return store.Record{}, errors.Wrapf(err, "failed to read record for [%s]", userID)
	}

	return record, nil
}

// IncrementOrCreate adds delta to the balance of userID with a single upsert
func (pgdb *PgDB) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	if _, err = pgdb.db.Exec(ctx, incrementSQL, userID, delta); err != nil {
		return errors.Wrapf(err, "failed to increment record for [%s]", userID)
	}

	return nil
}

// SetOrCreate overwrites the balance of userID
func (pgdb *PgDB) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	if _, err = pgdb.db.Exec(ctx, setSQL, userID, cookies); err != nil {
		return errors.Wrapf(err, "failed to set record for [%s]", userID)
	}

	return nil
}

// ScanDescending returns a page of records ordered by balance, highest first
func (pgdb *PgDB) ScanDescending(ctx context.Context, skip int, limit int) (records []store.Record, err error) {
	records = make([]store.Record, 0)
	if limit < 1 {
		return records, nil
	}

	if skip < 0 {
		skip = 0
	}

	rows, err := pgdb.db.Query(ctx, scanSQL, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan records")
	}
	defer rows.Close()

	for rows.Next() {
		var r store.Record
		if err = rows.Scan(&r.UserID, &r.Cookies); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}

		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan records")
	}

	return records, nil
}

// Close closes the connection pool
func (pgdb *PgDB) Close() (err error) {
	pgdb.db.Close()
	return nil
}
