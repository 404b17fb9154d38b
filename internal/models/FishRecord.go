package models

// GearSnapshot is the point-in-time copy of the equipment actually used,
// embedded in every catch record. It never changes after creation, even if
// the referenced gear set is later edited or deleted.
type GearSnapshot struct {
	Rod  string `json:"rod"`
	Reel string `json:"reel,omitempty"`
	Line string `json:"line"`
	Hook string `json:"hook"`
}

type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// EnvData carries the best-effort environmental enrichment captured at
// submission time. Pressure in hPa.
type EnvData struct {
	Pressure int       `json:"pressure"`
	Tide     string    `json:"tide"`
	Location *GeoPoint `json:"location,omitempty"`
}

// FishRecord is a write-once fact: one logged catch. GearRefID and
// SpotRefID are soft references — the entities they point to may be edited
// or deleted afterwards without touching the record.
type FishRecord struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"ownerId"`
	Species       string       `json:"species"`
	Length        float64      `json:"length"`
	Weight        float64      `json:"weight"`
	Rarity        Rarity       `json:"rarity"`
	ImageRef      string       `json:"imageRef,omitempty"`
	Environment   EnvData      `json:"environment"`
	GearRefID     string       `json:"gearRefId"`
	GearRefName   string       `json:"gearRefName"`
	SpotRefID     string       `json:"spotRefId"`
	SpotRefName   string       `json:"spotRefName"`
	GearSnapshot  GearSnapshot `json:"gearSnapshot"`
	Tags          []string     `json:"tags"`
	Note          string       `json:"note"`
	ManualWeather string       `json:"manualWeather,omitempty"`
	Timestamp     int64        `json:"timestamp"`
}

func (r FishRecord) RecordID() string {
	return r.ID
}
