package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"github.com/alexandre-normand/cookiebot/store"
	"google.golang.org/api/option"
	"io"
)

// gcdatastore wraps an actual google cloud datastore Client for real/production datastore interaction
type gcdatastore struct {
	*datastore.Client
	gcloudProjectID  string
	gcloudClientOpts []option.ClientOption
}

// connecter is implemented by any value that has a connect method
type connecter interface {
	connect(ctx context.Context) (err error)
}

// connect creates a new client instance from the initial gcloud project id and client options
func (ds *gcdatastore) connect(ctx context.Context) (err error) {
	ds.Client, err = datastore.NewClient(ctx, ds.gcloudProjectID, ds.gcloudClientOpts...)
	if err != nil {
		return err
	}

	return nil
}

// datastorer is implemented by any value that implements all of its methods. It is meant
// to allow easier testing decoupled from an actual datastore to interact with and
// the methods defined are methods implemented by the datastore.Client that this package
// uses (plus the transactional increment built on top of it)
type datastorer interface {
	connecter
	io.Closer
	Get(c context.Context, k *datastore.Key, dest interface{}) (err error)
	GetAll(c context.Context, query *datastore.Query, dest interface{}) (keys []*datastore.Key, err error)
	Put(c context.Context, k *datastore.Key, v interface{}) (key *datastore.Key, err error)
	incrementInTransaction(c context.Context, k *datastore.Key, delta int64) (err error)
}

// Get loads the entity stored for key into dst. See https://godoc.org/cloud.google.com/go/datastore#Client.Get
func (ds *gcdatastore) Get(c context.Context, k *datastore.Key, dest interface{}) (err error) {
	return ds.Client.Get(c, k, dest)
}

// GetAll runs the provided query in the given context and returns all keys that match that query.
// See https://godoc.org/cloud.google.com/go/datastore#Client.GetAll
func (ds *gcdatastore) GetAll(c context.Context, query *datastore.Query, dest interface{}) (keys []*datastore.Key, err error) {
	return ds.Client.GetAll(c, query, dest)
}

// Put saves the entity src into the datastore with the given key. See https://godoc.org/cloud.google.com/go/datastore#Client.Put
func (ds *gcdatastore) Put(c context.Context, k *datastore.Key, v interface{}) (key *datastore.Key, err error) {
	return ds.Client.Put(c, k, v)
}

// incrementInTransaction reads the record at k, adds delta to its balance and writes it back
// in a single transaction. A missing record is created with a balance of delta
func (ds *gcdatastore) incrementInTransaction(c context.Context, k *datastore.Key, delta int64) (err error) {
	_, err = ds.Client.RunInTransaction(c, func(tx *datastore.Transaction) error {
		r := store.Record{UserID: k.Name}
		if err := tx.Get(k, &r); err != nil && err != datastore.ErrNoSuchEntity {
			return err
		}

		cookies, err := store.AddToBalance(r.Cookies, delta)
		if err != nil {
			return err
		}

		r.Cookies = cookies
		_, err = tx.Put(k, &r)

		return err
	})

	return err
}
