package domain

import "time"

// ExpiryWindow is how far ahead of the expiry date a file counts as
// "expiring soon".
const ExpiryWindow = 30 * 24 * time.Hour

// Validity is the derived lifecycle state of a file relative to its expiry.
type Validity string

const (
	ValidityActive       Validity = "active"
	ValidityExpiringSoon Validity = "expiring_soon"
	ValidityExpired      Validity = "expired"
	ValidityUnknown      Validity = "unknown"
)

// File represents one managed document with its lifecycle metadata.
type File struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Size           int64           `json:"size"`
	ContentType    *string         `json:"contentType,omitempty"`
	Category       *string         `json:"category,omitempty"`
	Status         *string         `json:"status,omitempty"`
	Region         *Region         `json:"region,omitempty"`
	ChannelPartner *ChannelPartner `json:"channelPartner,omitempty"`
	Owner          *User           `json:"owner,omitempty"`
	UploadedAt     *time.Time      `json:"uploadedAt,omitempty"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	// Expired and Valid are optional server-supplied flags. When present they
	// take precedence over the date-derived classification.
	Expired *bool `json:"expired,omitempty"`
	Valid   *bool `json:"valid,omitempty"`
}

func (f File) RecordID() string { return f.ID }

// ValidityAt classifies the file against the given wall-clock time. The
// explicit server flags win when present; otherwise the expiry date decides:
// expired when expiry <= now, expiring soon when expiry is within the window,
// active beyond it. Files without an expiry date are unknown.
func (f File) ValidityAt(now time.Time) Validity {
	if f.Expired != nil {
		if *f.Expired {
			return ValidityExpired
		}
		if f.ExpiryDate != nil && expiringSoon(*f.ExpiryDate, now) {
			return ValidityExpiringSoon
		}
		return ValidityActive
	}
	if f.Valid != nil && !*f.Valid {
		return ValidityExpired
	}
	if f.ExpiryDate == nil {
		return ValidityUnknown
	}
	expiry := *f.ExpiryDate
	if !expiry.After(now) {
		return ValidityExpired
	}
	if expiringSoon(expiry, now) {
		return ValidityExpiringSoon
	}
	return ValidityActive
}

func expiringSoon(expiry, now time.Time) bool {
	return expiry.After(now) && !expiry.After(now.Add(ExpiryWindow))
}

// OwnedBy reports whether the file belongs to the given actor. Used for the
// client-side edit gate, which is a UX affordance only; the upstream API is
// the authority and re-checks ownership on every mutation.
func (f File) OwnedBy(actorID string) bool {
	if actorID == "" || f.Owner == nil {
		return false
	}
	return f.Owner.ID == actorID
}
