// Package appfs exposes build-time assets: database migrations and seed
// fixtures.
package appfs

import "embed"

//go:embed migrations fixtures
var FS embed.FS
