package model

import "time"

// Author represents a catalog author.
//
// Books is an ordered list of book titles. Every title in Books is expected
// to correspond to exactly one Book record whose Author field equals Name;
// the catalog service maintains that invariant across mutations. Duplicate
// titles are tolerated (appends are not deduplicated).
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Books     []string  `json:"books"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// HasBook reports whether a title is present in the author's book list.
func (a *Author) HasBook(title string) bool {
	for _, t := range a.Books {
		if t == title {
			return true
		}
	}
	return false
}
