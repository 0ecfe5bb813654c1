// Package sqliteexternal provides optional external SQLite drivers.
//
// To use the CGO driver (github.com/mattn/go-sqlite3) for the unit store:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/docgen
//
// By default docgen uses the pure Go modernc.org/sqlite driver, which needs
// no C toolchain and cross-compiles. See core/sqlite for the switch.
package sqliteexternal
