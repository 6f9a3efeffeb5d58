package store

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"path/filepath"
	"sync"
)

// LevelDB holds a datastore name and its leveldb instance. Records are stored as json
// documents keyed by user id
type LevelDB struct {
	Name     string
	database *leveldb.DB

	// writeLock serializes increments since leveldb has no atomic read-modify-write
	writeLock sync.Mutex
}

// NewLevelDB instantiates and open a new LevelDB instance backed by a leveldb database. If the
// leveldb database doesn't exist, one is created
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	// Expand '~' as the full home directory path if appropriate
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the LevelDB
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// ReadOrDefault returns the record stored for userID or a zero balance record if there is none
func (ldb *LevelDB) ReadOrDefault(ctx context.Context, userID string) (record Record, err error) {
	data, err := ldb.database.Get([]byte(userID), nil)
	if err == leveldb.ErrNotFound {
		return Record{UserID: userID}, nil
	}

	if err != nil {
		return Record{}, errors.Wrapf(err, "failed to read record for [%s]", userID)
	}

	if err = json.Unmarshal(data, &record); err != nil {
		return Record{}, errors.Wrapf(err, "invalid record stored for [%s]", userID)
	}

	return record, nil
}

// IncrementOrCreate adds delta to the balance of userID
func (ldb *LevelDB) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	ldb.writeLock.Lock()
	defer ldb.writeLock.Unlock()

	r, err := ldb.ReadOrDefault(ctx, userID)
	if err != nil {
		return err
	}

	cookies, err := AddToBalance(r.Cookies, delta)
	if err != nil {
		return errors.WithMessagef(err, "failed to increment balance of [%s]", userID)
	}

	return ldb.put(Record{UserID: userID, Cookies: cookies})
}

// SetOrCreate overwrites the balance of userID
func (ldb *LevelDB) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	return ldb.put(Record{UserID: userID, Cookies: cookies})
}

// ScanDescending loads all records, sorts them by balance and returns the requested page
func (ldb *LevelDB) ScanDescending(ctx context.Context, skip int, limit int) (records []Record, err error) {
	all := make([]Record, 0)

	iter := ldb.database.NewIterator(nil, nil)
	for iter.Next() {
		var r Record
		if err = json.Unmarshal(iter.Value(), &r); err != nil {
			iter.Release()
			return nil, errors.Wrapf(err, "invalid record stored for [%s]", string(iter.Key()))
		}

		all = append(all, r)
	}

	iter.Release()
	if err = iter.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to scan records")
	}

	SortDescending(all)

	return Page(all, skip, limit), nil
}

func (ldb *LevelDB) put(r Record) (err error) {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	if err = ldb.database.Put([]byte(r.UserID), data, nil); err != nil {
		return errors.Wrapf(err, "failed to write record for [%s]", r.UserID)
	}

	return nil
}
