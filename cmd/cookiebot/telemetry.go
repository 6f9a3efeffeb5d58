package main

import (
	"context"
	"github.com/alexandre-normand/cookiebot"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupTelemetry registers the global meter provider exporting to the default prometheus registry
// (served on the metrics path). The returned shutdown function should be deferred by the caller
func setupTelemetry(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cookiebot.VERSION),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	return mp.Shutdown, nil
}
