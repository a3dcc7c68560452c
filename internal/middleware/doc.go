// Package middleware provides HTTP middleware for the reading-tracker API.
//
// Middlewares compose through Chain and run in the order given. The
// standard stack is Recovery, RequestID, Logger, CORS on every route, with
// SessionAuth layered onto the routes that require a login.
//
// SessionCookie owns the signed cookie format; SessionAuth pairs it with a
// SessionResolver to turn the cookie into a user on the request context.
package middleware
