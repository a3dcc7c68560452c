package model

import "time"

// Book represents a catalog book.
//
// Author holds the author's name, not a record id. Title is the unique key
// used for upsert matching when authors are created or updated with a book
// list.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Publisher  string    `json:"publisher,omitempty"`
	Category   string    `json:"category,omitempty"`
	TotalPages int       `json:"total_pages,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
