package main

import (
	"context"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/alexandre-normand/cookiebot/store"
	"github.com/alexandre-normand/cookiebot/store/datastoredb"
	"github.com/alexandre-normand/cookiebot/store/inmemorydb"
	"github.com/alexandre-normand/cookiebot/store/pgdb"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/api/option"
	"net/url"
)

// ErrUnsupportedScheme is returned when the database url scheme doesn't match any storer
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// openStorer opens the record storer selected by the database url scheme and decorates it with telemetry
func openStorer(ctx context.Context, v *viper.Viper, meter metric.Meter) (storer store.RecordStorer, err error) {
	base, err := openBaseStorer(ctx, v)
	if err != nil {
		return nil, err
	}

	storer, err = store.NewRecordStorerWithTelemetry(base, store.CollectionName, meter)
	if err != nil {
		base.Close()
		return nil, err
	}

	return storer, nil
}

func openBaseStorer(ctx context.Context, v *viper.Viper) (storer store.RecordStorer, err error) {
	rawURL := v.GetString(config.DatabaseURLKey)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid database url")
	}

	switch u.Scheme {
	case "datastore":
		if u.Host == "" {
			return nil, errors.Errorf("database url [%s] is missing the gcloud project id", rawURL)
		}

		opts := []option.ClientOption{}
		if credentialsFile := v.GetString(config.GCloudCredentialsFileKey); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		dsdb, err := datastoredb.New(ctx, u.Host, opts...)
		if err != nil {
			return nil, err
		}

		return dsdb, nil

	case "postgres", "postgresql":
		pg, err := pgdb.New(ctx, rawURL)
		if err != nil {
			return nil, err
		}

		return pg, nil

	case "leveldb":
		path := u.Host + u.Path
		if path == "" {
			return nil, errors.Errorf("database url [%s] is missing the leveldb path", rawURL)
		}

		ldb, err := store.NewLevelDB(store.CollectionName, path)
		if err != nil {
			return nil, err
		}

		return ldb, nil

	case "memory":
		return inmemorydb.New(), nil

	default:
		return nil, errors.WithMessagef(ErrUnsupportedScheme, "database url scheme [%s]", u.Scheme)
	}
}
