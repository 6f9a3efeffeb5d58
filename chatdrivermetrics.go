package cookiebot

import (
	"context"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

// methodTelemetry holds the instruments shared by the telemetry decorators of a given interface
type methodTelemetry struct {
	name                string
	methodCounter       metric.Int64Counter
	errCounter          metric.Int64Counter
	methodTimeHistogram metric.Int64Histogram
}

// newMethodTelemetry creates the call and error counters as well as the processing time histogram
// for the interface named iface
func newMethodTelemetry(iface string, name string, meter metric.Meter) (mt methodTelemetry, err error) {
	mt.name = name

	if mt.methodCounter, err = meter.Int64Counter(iface + "_Calls"); err != nil {
		return mt, err
	}

	if mt.errCounter, err = meter.Int64Counter(iface + "_Errors"); err != nil {
		return mt, err
	}

	if mt.methodTimeHistogram, err = meter.Int64Histogram(iface+"_ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		return mt, err
	}

	return mt, nil
}

func (mt methodTelemetry) record(method string, since time.Time, err error) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("name", mt.name), attribute.String("method", method))

	if err != nil {
		mt.errCounter.Add(ctx, 1, attrs)
	}

	mt.methodCounter.Add(ctx, 1, attrs)
	mt.methodTimeHistogram.Record(ctx, time.Since(since).Milliseconds(), attrs)
}

// chatDriverWithTelemetry implements ChatDriver interface with all methods wrapped
// with open telemetry metrics
type chatDriverWithTelemetry struct {
	base ChatDriver
	methodTelemetry
}

// newChatDriverWithTelemetry returns an instance of the ChatDriver decorated with open telemetry timing and count metrics
func newChatDriverWithTelemetry(base ChatDriver, name string, meter metric.Meter) (cd chatDriverWithTelemetry, err error) {
	cd.base = base
	cd.methodTelemetry, err = newMethodTelemetry("chatDriver", name, meter)

	return cd, err
}

// PostMessage implements ChatDriver
func (_d chatDriverWithTelemetry) PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	defer func(since time.Time) { _d.record("PostMessage", since, err) }(time.Now())

	return _d.base.PostMessage(channelID, options...)
}

// PostEphemeral implements ChatDriver
func (_d chatDriverWithTelemetry) PostEphemeral(channelID string, userID string, options ...slack.MsgOption) (rTimestamp string, err error) {
	defer func(since time.Time) { _d.record("PostEphemeral", since, err) }(time.Now())

	return _d.base.PostEphemeral(channelID, userID, options...)
}
