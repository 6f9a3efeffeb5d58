package cookiebot

import (
	"context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

const (
	messageEventType    = "message"
	membershipEventType = "membership"
	slashEventType      = "slash"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	coreMetrics coreMetrics
}

// coreMetrics holds core cookiebot metrics
type coreMetrics struct {
	eventsSeen                 metric.Int64Counter
	commandsProcessed          metric.Int64Counter
	cmdProcessingLatencyMillis metric.Int64Histogram
	noticesSent                metric.Int64Counter
	slackLatencyMillis         metric.Int64Gauge
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter, err error) {
	ins = new(instrumenter)
	ins.appName = appName

	cm := &ins.coreMetrics
	if cm.eventsSeen, err = meter.Int64Counter("eventsSeen"); err != nil {
		return nil, err
	}

	if cm.commandsProcessed, err = meter.Int64Counter("commandsProcessed"); err != nil {
		return nil, err
	}

	if cm.cmdProcessingLatencyMillis, err = meter.Int64Histogram("cmdProcessingLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	if cm.noticesSent, err = meter.Int64Counter("noticesSent"); err != nil {
		return nil, err
	}

	if cm.slackLatencyMillis, err = meter.Int64Gauge("slackLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return ins, nil
}

func (ins *instrumenter) nameAttr() attribute.KeyValue {
	return attribute.String("name", ins.appName)
}

// eventSeen counts an incoming event of the given type
func (ins *instrumenter) eventSeen(eventType string) {
	ins.coreMetrics.eventsSeen.Add(context.Background(), 1, metric.WithAttributes(ins.nameAttr(), attribute.String("eventType", eventType)))
}

// commandProcessed counts a processed command and records its processing time
func (ins *instrumenter) commandProcessed(pluginName string, command string, d time.Duration) {
	attrs := metric.WithAttributes(ins.nameAttr(), attribute.String("plugin", pluginName), attribute.String("command", command))

	ins.coreMetrics.commandsProcessed.Add(context.Background(), 1, attrs)
	ins.coreMetrics.cmdProcessingLatencyMillis.Record(context.Background(), d.Milliseconds(), attrs)
}

// noticeSent counts a membership notice posted by a plugin
func (ins *instrumenter) noticeSent(pluginName string) {
	ins.coreMetrics.noticesSent.Add(context.Background(), 1, metric.WithAttributes(ins.nameAttr(), attribute.String("plugin", pluginName)))
}

// slackLatency records the latest latency reported by the slack RTM connection
func (ins *instrumenter) slackLatency(d time.Duration) {
	ins.coreMetrics.slackLatencyMillis.Record(context.Background(), d.Milliseconds(), metric.WithAttributes(ins.nameAttr()))
}

type timed func()

// measure returns the execution duration of a timed function
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Since(before)
}
