// Package service contains the business logic for the reading-tracker API.
//
// Services consume repositories through interfaces declared in this package,
// which keeps the dependency direction inward and lets tests substitute
// in-memory fakes.
//
// # Catalog Synchronization
//
// CatalogService keeps the denormalized author/book link consistent: an
// author's books list holds titles, and each book's author field holds the
// author's name. Every catalog mutation performs the corrective writes on the
// opposite table as independent follow-up steps. There is no cross-table
// transaction; a failure mid-sequence leaves applied steps in place and
// surfaces the error.
//
// # Errors
//
// Services return the sentinel errors in errors.go. Handlers map them to
// HTTP problem responses and never branch on error strings.
package service
