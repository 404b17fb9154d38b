package models

// GearSet is a named, reusable equipment configuration owned by one
// account. Unlike catch records it stays mutable: the owner may edit it in
// place or fork a divergent copy during record creation.
type GearSet struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	Rod     string `json:"rod"`
	Reel    string `json:"reel,omitempty"`
	Line    string `json:"line"`
	Hook    string `json:"hook"`
}

func (g GearSet) RecordID() string {
	return g.ID
}

// Snapshot returns the gear field values as an immutable value copy.
func (g GearSet) Snapshot() GearSnapshot {
	return GearSnapshot{
		Rod:  g.Rod,
		Reel: g.Reel,
		Line: g.Line,
		Hook: g.Hook,
	}
}
