package database

import (
	"time"
)

// RSVP status values, stored as-is.
const (
	RSVPStatusYes   = "Yes"
	RSVPStatusNo    = "No"
	RSVPStatusMaybe = "Maybe"
)

// ValidRSVPStatus reports whether s is one of the three accepted values.
func ValidRSVPStatus(s string) bool {
	return s == RSVPStatusYes || s == RSVPStatusNo || s == RSVPStatusMaybe
}

// AuthUser is a credential record, owned by the auth layer. The public User
// profile is a separate denormalized row keyed by the same id.
type AuthUser struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
}

type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	City        string
	CreatedBy   string
	CreatedAt   time.Time

	// Creator is populated by listing queries that join the users table.
	Creator *User
}

type RSVP struct {
	ID        string
	UserID    string
	EventID   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// For display next to the status.
	UserName  string
	UserEmail string
}

// RSVPCounts holds the per-status totals for one event. All three buckets
// are always present, zero-filled when empty.
type RSVPCounts struct {
	Yes   int
	No    int
	Maybe int
}

func (c RSVPCounts) Total() int {
	return c.Yes + c.No + c.Maybe
}

// CountRSVPs buckets an already-fetched RSVP set by status.
func CountRSVPs(rsvps []*RSVP) RSVPCounts {
	var counts RSVPCounts
	for _, r := range rsvps {
		switch r.Status {
		case RSVPStatusYes:
			counts.Yes++
		case RSVPStatusNo:
			counts.No++
		case RSVPStatusMaybe:
			counts.Maybe++
		}
	}
	return counts
}
