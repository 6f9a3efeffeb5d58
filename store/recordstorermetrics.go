package store

import (
	"context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

// RecordStorerWithTelemetry implements RecordStorer with all methods wrapped
// with open telemetry metrics
type RecordStorerWithTelemetry struct {
	base                RecordStorer
	name                string
	methodCounter       metric.Int64Counter
	errCounter          metric.Int64Counter
	methodTimeHistogram metric.Int64Histogram
}

// NewRecordStorerWithTelemetry returns an instance of the RecordStorer decorated with open telemetry timing and count metrics
func NewRecordStorerWithTelemetry(base RecordStorer, name string, meter metric.Meter) (rs *RecordStorerWithTelemetry, err error) {
	rs = &RecordStorerWithTelemetry{base: base, name: name}

	if rs.methodCounter, err = meter.Int64Counter("recordStorer_Calls", metric.WithDescription("Number of record storer calls")); err != nil {
		return nil, err
	}

	if rs.errCounter, err = meter.Int64Counter("recordStorer_Errors", metric.WithDescription("Number of failed record storer calls")); err != nil {
		return nil, err
	}

	if rs.methodTimeHistogram, err = meter.Int64Histogram("recordStorer_ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return rs, nil
}

func (_d *RecordStorerWithTelemetry) record(ctx context.Context, method string, since time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("name", _d.name), attribute.String("method", method))

	if err != nil {
		_d.errCounter.Add(ctx, 1, attrs)
	}

	_d.methodCounter.Add(ctx, 1, attrs)
	_d.methodTimeHistogram.Record(ctx, time.Since(since).Milliseconds(), attrs)
}

// Close implements RecordStorer
func (_d *RecordStorerWithTelemetry) Close() (err error) {
	defer func(since time.Time) { _d.record(context.Background(), "Close", since, err) }(time.Now())

	return _d.base.Close()
}

// ReadOrDefault implements RecordStorer
func (_d *RecordStorerWithTelemetry) ReadOrDefault(ctx context.Context, userID string) (record Record, err error) {
	defer func(since time.Time) { _d.record(ctx, "ReadOrDefault", since, err) }(time.Now())

	return _d.base.ReadOrDefault(ctx, userID)
}

// IncrementOrCreate implements RecordStorer
func (_d *RecordStorerWithTelemetry) IncrementOrCreate(ctx context.Context, userID string, delta int64) (err error) {
	defer func(since time.Time) { _d.record(ctx, "IncrementOrCreate", since, err) }(time.Now())

	return _d.base.IncrementOrCreate(ctx, userID, delta)
}

// SetOrCreate implements RecordStorer
func (_d *RecordStorerWithTelemetry) SetOrCreate(ctx context.Context, userID string, cookies int64) (err error) {
	defer func(since time.Time) { _d.record(ctx, "SetOrCreate", since, err) }(time.Now())

	return _d.base.SetOrCreate(ctx, userID, cookies)
}

// ScanDescending implements RecordStorer
func (_d *RecordStorerWithTelemetry) ScanDescending(ctx context.Context, skip int, limit int) (records []Record, err error) {
	defer func(since time.Time) { _d.record(ctx, "ScanDescending", since, err) }(time.Now())

	return _d.base.ScanDescending(ctx, skip, limit)
}
