package inmemorydb_test

import (
	"context"
	"errors"
	"github.com/alexandre-normand/cookiebot/store"
	"github.com/alexandre-normand/cookiebot/store/inmemorydb"
	"github.com/stretchr/testify/assert"
	"math"
	"sync"
	"testing"
)

func TestReadOrDefaultOnEmptyStorage(t *testing.T) {
	imdb := inmemorydb.New()

	r, err := imdb.ReadOrDefault(context.Background(), "U1")
	assert.Nil(t, err)
	assert.Equal(t, store.Record{UserID: "U1"}, r)
}

func TestReadSeededRecords(t *testing.T) {
	imdb := inmemorydb.New(store.Record{UserID: "U1", Cookies: 4}, store.Record{UserID: "U2", Cookies: 9})

	r, err := imdb.ReadOrDefault(context.Background(), "U2")
	assert.Nil(t, err)
	assert.Equal(t, int64(9), r.Cookies)
}

func TestIncrementAndSet(t *testing.T) {
	imdb := inmemorydb.New()
	ctx := context.Background()

	assert.Nil(t, imdb.IncrementOrCreate(ctx, "U1", 10))
	assert.Nil(t, imdb.IncrementOrCreate(ctx, "U1", -15))

	r, _ := imdb.ReadOrDefault(ctx, "U1")
	assert.Equal(t, int64(-5), r.Cookies)

	assert.Nil(t, imdb.SetOrCreate(ctx, "U1", 2))

	r, _ = imdb.ReadOrDefault(ctx, "U1")
	assert.Equal(t, int64(2), r.Cookies)
}

func TestConcurrentIncrementsAreNotLost(t *testing.T) {
	imdb := inmemorydb.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			imdb.IncrementOrCreate(ctx, "U1", 2)
		}()
	}
	wg.Wait()

	r, err := imdb.ReadOrDefault(ctx, "U1")
	assert.Nil(t, err)
	assert.Equal(t, int64(100), r.Cookies)
}

func TestScanDescending(t *testing.T) {
	imdb := inmemorydb.New(store.Record{UserID: "A", Cookies: 100}, store.Record{UserID: "B", Cookies: 80}, store.Record{UserID: "C", Cookies: 90})

	records, err := imdb.ScanDescending(context.Background(), 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []store.Record{{UserID: "A", Cookies: 100}, {UserID: "C", Cookies: 90}, {UserID: "B", Cookies: 80}}, records)

	records, err = imdb.ScanDescending(context.Background(), 5, 10)
	assert.Nil(t, err)
	assert.Empty(t, records)
}

func TestClose(t *testing.T) {
	assert.Nil(t, inmemorydb.New().Close())
}

func TestIncrementPastInt64RangeLeavesBalanceUnchanged(t *testing.T) {
	imdb := inmemorydb.New()
	ctx := context.Background()

	assert.Nil(t, imdb.IncrementOrCreate(ctx, "U1", math.MaxInt64))

	err := imdb.IncrementOrCreate(ctx, "U1", math.MaxInt64)
	assert.True(t, errors.Is(err, store.ErrBalanceOutOfRange))

	r, _ := imdb.ReadOrDefault(ctx, "U1")
	assert.Equal(t, int64(math.MaxInt64), r.Cookies)
}
