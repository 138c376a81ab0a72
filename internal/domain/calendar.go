package domain

import "time"

// Calendar is the root scheduling namespace owned by one user.
// Slug is unique across calendars; Timezone is an IANA name that anchors
// the wall-clock times of generated slots.
type Calendar struct {
	ID          string
	OwnerID     int64
	Name        string
	Description *string
	Slug        string
	Timezone    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if the calendar belongs to the user
func (c *Calendar) IsOwnedBy(userID int64) bool {
	return c.OwnerID == userID
}

// Location resolves the calendar timezone, falling back to UTC
func (c *Calendar) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
