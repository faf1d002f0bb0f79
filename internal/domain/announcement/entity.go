package announcement

import "time"

// Announcement is a company-wide message shown on every user's dashboard.
type Announcement struct {
	ID        string
	Title     string
	Message   string
	CreatedBy *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
