// Package repository provides data access for the reading-tracker API.
//
// Each repository wraps one SurrealDB table (author, book, user, session)
// behind methods the service layer consumes through interfaces it defines
// itself. Repositories issue SurrealQL with $var binding and never hold
// business rules; the catalog's author/book synchronization lives entirely
// in the service layer.
//
// # Result Parsing
//
// SurrealDB responses come back as nested maps. helpers.go centralizes the
// extraction primitives (getString, getStringSlice, parseTime,
// convertSurrealID) used by the per-table parse functions.
//
// # Missing Records
//
// Lookup methods return (nil, nil) when a record does not exist; services
// translate that into their own sentinel errors.
package repository
