// Package handler provides the HTTP layer for the reading-tracker API.
//
// Handlers decode requests, delegate to services and encode responses.
// All error responses are RFC 9457 problem documents produced through
// MapServiceError, which owns the sentinel-to-status mapping; handlers
// never pick status codes for service errors themselves. The one local
// exception is login, which collapses unknown-user and bad-password into
// a single 401.
package handler
