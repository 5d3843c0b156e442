package domain

import "time"

// Lease ties a file to a lessee for a bounded period. Lease listings feed the
// lease report screens; expiry classification reuses the file rules.
type Lease struct {
	ID         string     `json:"id"`
	FileID     string     `json:"fileId"`
	FileName   *string    `json:"fileName,omitempty"`
	Lessee     *User      `json:"lessee,omitempty"`
	Region     *Region    `json:"region,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Status     *string    `json:"status,omitempty"`
	Expired    *bool      `json:"expired,omitempty"`
}

func (l Lease) RecordID() string { return l.ID }

// ValidityAt classifies the lease against the given wall-clock time with the
// same precedence rules as File: explicit flag first, then the expiry date.
func (l Lease) ValidityAt(now time.Time) Validity {
	proxy := File{ExpiryDate: l.ExpiryDate, Expired: l.Expired}
	return proxy.ValidityAt(now)
}
