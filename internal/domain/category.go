package domain

import "time"

// Category groups products for shop filtering.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
