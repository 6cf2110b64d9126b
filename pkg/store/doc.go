// Package store is the persistence boundary for websites.
//
// A [Store] loads and saves [model.WebsiteRecord] values. Four backends are
// provided:
//
//   - [MemoryStore]: process-local, for tests and the HTTP server's scratch mode
//   - [FileStore]: one JSON file per website, for the CLI
//   - [SQLiteStore]: a single SQLite database (modernc.org/sqlite, no cgo)
//   - [MongoStore]: a MongoDB collection
//
// [Open] picks a backend from a URI:
//
//	memory:
//	file:/home/me/.local/share/pagesmith/sites
//	sqlite:/var/lib/pagesmith/sites.db
//	mongodb://localhost:27017/pagesmith
//
// Every backend stores the JSON envelope produced by [Encode], so unknown
// component fields survive a round trip, and runs [model.Migrate] on load.
// I/O failures are returned as PERSISTENCE_FAILED errors; a missing website
// is NOT_FOUND. Concurrent saves of the same website are last-write-wins.
package store
