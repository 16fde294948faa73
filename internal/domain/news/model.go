package news

import "time"

// Content is the single league news blob, stored as an opaque JSON
// document and replaced wholesale on every update.
type Content struct {
	ID        int64
	Body      string
	UpdatedAt time.Time
}
