package models

// Page is one page of a cursor-paginated listing. An empty NextCursor means
// there are no more rows.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
