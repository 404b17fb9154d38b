package models

type FishingSpot struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s FishingSpot) RecordID() string {
	return s.ID
}
