// Package migrations ships the schema of the SQLite game journal. Files under
// events/ apply in name order.
package migrations

import "embed"

//go:embed events/*.sql
var EventsFS embed.FS
