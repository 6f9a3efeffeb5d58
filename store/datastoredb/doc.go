/*
Package datastoredb provides an implementation of github.com/alexandre-normand/cookiebot/store's RecordStorer interface
backed by the Google Cloud Datastore.

Requirements for the Google Cloud Datastore integration:
  - A valid project id with datastore mode enabled
  - Google Cloud Credentials (typically in the form of a json file with credentials from https://console.cloud.google.com/apis/credentials/serviceaccountkey)
  - A single-property index on cookies (descending) which datastore provides by default

Example code:

	import (
		"github.com/alexandre-normand/cookiebot/store/datastoredb"
		"google.golang.org/api/option"
	)

	func main() {
		// The first argument is the gcloud project id which is what you'll have created with your gcloud service account
		// The other arguments are client options which are most useful for providing credentials either in the form of a pre-parsed json file or
		// most commonly, the path to a json credentials file
		storer, err := datastoredb.New(context.Background(), "youppi", option.WithCredentialsFile(*gcloudCredentialsFile))
		if err != nil {
			log.Fatalf("Opening datastore failed: %s", err.Error())
		}
		defer storer.Close()

		// Do something with the database
		l := ledger.New(storer)

		...
	}
*/
package datastoredb // import "github.com/alexandre-normand/cookiebot/store/datastoredb"
