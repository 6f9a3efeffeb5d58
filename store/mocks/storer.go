// Package mocks contains a mock of the store package interfaces
package mocks

import (
	"context"
	"github.com/alexandre-normand/cookiebot/store"
	"github.com/stretchr/testify/mock"
)

// Storer holds a mock implementation of store.RecordStorer
type Storer struct {
	mock.Mock
}

// ReadOrDefault mocks an implementation of ReadOrDefault
func (ms *Storer) ReadOrDefault(ctx context.Context, userID string) (record store.Record, err error) {
	args := ms.Called(ctx, userID)

	return args.Get(0).(store.Record), args.Error(1)
}

// IncrementOrCreate mocks an implementation of IncrementOrCreate
func (ms *Storer) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	args := ms.Called(ctx, userID, delta)

	return args.Error(0)
}

// SetOrCreate mocks an implementation of SetOrCreate
func (ms *Storer) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	args := ms.Called(ctx, userID, cookies)

	return args.Error(0)
}

// ScanDescending mocks an implementation of ScanDescending
func (ms *Storer) ScanDescending(ctx context.Context, skip int, limit int) (records []store.Record, err error) {
	args := ms.Called(ctx, skip, limit)

	if r := args.Get(0); r != nil {
		records = r.([]store.Record)
	}

	return records, args.Error(1)
}

// Close mocks an implementation of Close
func (ms *Storer) Close() (err error) {
	args := ms.Called()

	return args.Error(0)
}
