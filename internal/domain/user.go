package domain

import "time"

// User represents an account as returned by the upstream API. Optional fields
// are pointers so that absence stays distinguishable from the zero value.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	Role      *string    `json:"role,omitempty"`
	Status    *string    `json:"status,omitempty"`
	RegionID  *string    `json:"regionId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (u User) RecordID() string { return u.ID }

// FullName flattens the first/last name pair into a display string. Missing
// halves are skipped; a user with neither falls back to the username, and an
// absent user entirely is the caller's concern (see UserName).
func (u User) FullName() string {
	first := StringOr(u.FirstName, "")
	last := StringOr(u.LastName, "")
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return u.Username
	}
}

// UserName renders an optional user reference for display. Absent users
// render as "N/A" so exported cells never come out empty-but-meaningful.
func UserName(u *User) string {
	if u == nil {
		return "N/A"
	}
	if name := u.FullName(); name != "" {
		return name
	}
	return "Unknown"
}
