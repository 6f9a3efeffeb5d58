package inmemorydb

import (
	"context"
	"github.com/alexandre-normand/cookiebot/store"
	"sync"
)

// InMemoryDB implements the store.RecordStorer interface and keeps every record in memory.
// Nothing survives a restart
type InMemoryDB struct {
	sync.RWMutex
	data map[string]int64
}

// New returns a new instance of InMemoryDB, optionally seeded with existing records
func New(records ...store.Record) (imdb *InMemoryDB) {
	imdb = new(InMemoryDB)
	imdb.data = make(map[string]int64)

	for _, r := range records {
		imdb.data[r.UserID] = r.Cookies
	}

	return imdb
}

// ReadOrDefault returns the record for userID or a record with a zero balance if there is none
func (imdb *InMemoryDB) ReadOrDefault(ctx context.Context, userID string) (record store.Record, err error) {
	imdb.RLock()
	defer imdb.RUnlock()

	return store.Record{UserID: userID, Cookies: imdb.data[userID]}, nil
}

// IncrementOrCreate adds delta to the balance of userID
func (imdb *InMemoryDB) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	imdb.Lock()
	defer imdb.Unlock()

	cookies, err := store.AddToBalance(imdb.data[userID], delta)
	if err != nil {
		return err
	}

	imdb.data[userID] = cookies
	return nil
}

// SetOrCreate overwrites the balance of userID
func (imdb *InMemoryDB) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	imdb.Lock()
	defer imdb.Unlock()

	imdb.data[userID] = cookies
	return nil
}

// ScanDescending returns a copy of the requested page of records, highest balance first
func (imdb *InMemoryDB) ScanDescending(ctx context.Context, skip int, limit int) (records []store.Record, err error) {
	imdb.RLock()
	all := make([]store.Record, 0, len(imdb.data))
	for u, c := range imdb.data {
		all = append(all, store.Record{UserID: u, Cookies: c})
	}
	imdb.RUnlock()

	store.SortDescending(all)

	return store.Page(all, skip, limit), nil
}

// Close is a no-op
func (imdb *InMemoryDB) Close() (err error) {
	return nil
}
