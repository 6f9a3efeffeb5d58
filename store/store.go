// Package store defines the persistence contract for cookie balance records. Implementations
// live in this package (LevelDB) and its sub-packages (datastoredb, pgdb and inmemorydb)
package store

import (
	"context"
	"github.com/pkg/errors"
	"io"
	"math"
	"sort"
)

const (
	// CollectionName is the name of the collection (datastore kind, table, leveldb directory)
	// holding balance records
	CollectionName = "cookies"
)

// ErrBalanceOutOfRange is returned when an increment would take a balance past the int64 range
var ErrBalanceOutOfRange = errors.New("balance out of range")

// Record holds the balance of cookies of a single user. There is exactly one record per UserID
type Record struct {
	UserID  string `datastore:"user_id,noindex" json:"user_id"`
	Cookies int64  `datastore:"cookies" json:"cookies"`
}

// RecordStorer is implemented by any value that persists balance records. Absence of a record
// is never an error: reads fall back to a zero balance and writes create missing records
type RecordStorer interface {
	io.Closer

	// ReadOrDefault returns the record stored for userID or a record with a zero balance
	// if none exists
	ReadOrDefault(ctx context.Context, userID string) (record Record, err error)

	// IncrementOrCreate atomically adds delta to the balance of userID. If no record exists,
	// one is created with a balance of delta
	IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error)

	// SetOrCreate overwrites the balance of userID with cookies, creating the record if necessary
	SetOrCreate(ctx context.Context, userID string, cookies int64) (err error)

	// ScanDescending returns records ordered by balance (highest first), skipping the
	// first skip records and returning at most limit of them
	ScanDescending(ctx context.Context, skip int, limit int) (records []Record, err error)
}

// AddToBalance returns balance + delta or ErrBalanceOutOfRange if the sum doesn't fit in an int64.
// Postgres rejects the same increments with a numeric range error
func AddToBalance(balance int64, delta int64) (sum int64, err error) {
	if (delta > 0 && balance > math.MaxInt64-delta) || (delta < 0 && balance < math.MinInt64-delta) {
		return balance, errors.WithMessagef(ErrBalanceOutOfRange, "adding [%d] to [%d]", delta, balance)
	}

	return balance + delta, nil
}

// SortDescending sorts records by balance, highest first. Records with equal balances
// are ordered by user id to keep results stable between calls
func SortDescending(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Cookies == records[j].Cookies {
			return records[i].UserID < records[j].UserID
		}

		return records[i].Cookies > records[j].Cookies
	})
}

// Page returns the window of records starting at skip and holding at most limit records.
// A negative skip is treated as zero and a limit lower than one yields an empty page
func Page(records []Record, skip int, limit int) (page []Record) {
	if skip < 0 {
		skip = 0
	}

	if limit < 1 || skip >= len(records) {
		return []Record{}
	}

	end := skip + limit
	if end > len(records) || end < skip {
		end = len(records)
	}

	page = make([]Record, end-skip)
	copy(page, records[skip:end])

	return page
}
