// Package model defines domain entities and data structures for the
// reading-tracker API.
//
// The model package contains all struct definitions for domain objects and
// error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Author: Catalog author holding a denormalized list of book titles
//   - Book: Catalog book holding a denormalized author name
//   - User: Application user with local and/or GitHub credentials
//   - Session: Server-side login session bound to a user
//
// Author.Books and Book.Author are independent denormalized fields rather
// than a relational edge; the catalog service keeps them mutually consistent
// procedurally on every mutation.
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Book struct {
//	    ID     string `json:"id"`
//	    Title  string `json:"title"`
//	    Author string `json:"author"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
