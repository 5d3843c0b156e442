package domain

// Region is a geographic grouping files and partners are tagged with.
type Region struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r Region) RecordID() string { return r.ID }

// RegionName renders an optional region reference for display.
func RegionName(r *Region) string {
	if r == nil || r.Name == "" {
		return "N/A"
	}
	return r.Name
}

// ChannelPartner is a distribution partner scoped to a region.
type ChannelPartner struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Region       *Region `json:"region,omitempty"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (p ChannelPartner) RecordID() string { return p.ID }

// PartnerName renders an optional channel partner reference for display.
func PartnerName(p *ChannelPartner) string {
	if p == nil || p.Name == "" {
		return "N/A"
	}
	return p.Name
}
