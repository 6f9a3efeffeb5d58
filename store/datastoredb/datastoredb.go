package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"github.com/alexandre-normand/cookiebot/store"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"math"
)

const (
	testConnectivityKey = "testConnectivity"
)

// DatastoreDB implements the store.RecordStorer interface. Records are stored as entities of
// the store.CollectionName kind keyed by user id
type DatastoreDB struct {
	datastorer
	kind string
}

// New returns a new instance of DatastoreDB for the given gcloud project id. At least one option to provide
// gcloud client credentials is usually required (unless running with application default credentials)
func New(ctx context.Context, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	gcd := gcdatastore{gcloudProjectID: gcloudProjectID, gcloudClientOpts: gcloudClientOpts}

	return newWithDatastorer(ctx, store.CollectionName, &gcd)
}

// newWithDatastorer returns a new instance of DatastoreDB for the given kind using the
// datastorer to talk to the actual datastore
func newWithDatastorer(ctx context.Context, kind string, datastorer datastorer) (dsdb *DatastoreDB, err error) {
	dsdb = new(DatastoreDB)
	dsdb.datastorer = datastorer
	dsdb.kind = kind

	if err = dsdb.connect(ctx); err != nil {
		return nil, err
	}

	if err = dsdb.testDB(ctx); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testDB makes a lightweight call to the datastore to validate connectivity and credentials
func (dsdb *DatastoreDB) testDB(ctx context.Context) (err error) {
	var r store.Record
	err = dsdb.Get(ctx, dsdb.key(testConnectivityKey), &r)

	if err != nil && err != datastore.ErrNoSuchEntity {
		return err
	}

	return nil
}

func (dsdb *DatastoreDB) key(userID string) (k *datastore.Key) {
	return datastore.NameKey(dsdb.kind, userID, nil)
}

// ReadOrDefault returns the record for userID or a record with a zero balance if the entity doesn't exist
func (dsdb *DatastoreDB) ReadOrDefault(ctx context.Context, userID string) (record store.Record, err error) {
	err = dsdb.Get(ctx, dsdb.key(userID), &record)
	if err == datastore.ErrNoSuchEntity {
		return store.Record{UserID: userID}, nil
	}

	if err != nil {
		return store.Record{}, errors.Wrapf(err, "failed to get [%s] entity [%s]", dsdb.kind, userID)
	}

	record.UserID = userID
	return record, nil
}

// IncrementOrCreate adds delta to the balance of userID in a transaction
func (dsdb *DatastoreDB) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	if err = dsdb.incrementInTransaction(ctx, dsdb.key(userID), delta); err != nil {
		return errors.Wrapf(err, "failed to increment [%s] entity [%s]", dsdb.kind, userID)
	}

	return nil
}

// SetOrCreate stores the record for userID with the given balance, overwriting any previous entity
func (dsdb *DatastoreDB) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	if _, err = dsdb.Put(ctx, dsdb.key(userID), &store.Record{UserID: userID, Cookies: cookies}); err != nil {
		return errors.Wrapf(err, "failed to put [%s] entity [%s]", dsdb.kind, userID)
	}

	return nil
}

// ScanDescending queries records ordered by balance, highest first. Offset and limit are
// applied by the datastore. Offsets the datastore can't represent are past every record so
// they yield an empty page without querying
func (dsdb *DatastoreDB) ScanDescending(ctx context.Context, skip int, limit int) (records []store.Record, err error) {
	if limit < 1 || skip > math.MaxInt32 {
		return []store.Record{}, nil
	}

	if limit > math.MaxInt32 {
		limit = math.MaxInt32
	}

	if skip < 0 {
		skip = 0
	}

	query := datastore.NewQuery(dsdb.kind).Order("-cookies").Offset(skip).Limit(limit)

	records = make([]store.Record, 0)
	keys, err := dsdb.GetAll(ctx, query, &records)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query [%s] entities", dsdb.kind)
	}

	for i, k := range keys {
		if i < len(records) && records[i].UserID == "" {
			records[i].UserID = k.Name
		}
	}

	return records, nil
}
