/*
Package inmemorydb provides an implementation of github.com/alexandre-normand/cookiebot/store's RecordStorer interface
that keeps records in memory only.

The main use-cases for the inmemorydb are tests and local runs (DATABASE_URL=memory://) where losing
balances on restart is acceptable.

Example code:

	import (
		"github.com/alexandre-normand/cookiebot/ledger"
		"github.com/alexandre-normand/cookiebot/store/inmemorydb"
	)

	func main() {
		l := ledger.New(inmemorydb.New())

		// Run your instance
		...
	}
*/
package inmemorydb
