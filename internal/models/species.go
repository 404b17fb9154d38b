package models

type SpeciesInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SpeciesCatalog is the static reference list shown in the collection book.
// Not persisted; records store the species as free text.
var SpeciesCatalog = []SpeciesInfo{
	{ID: "f_1", Name: "Crucian Carp", Category: "freshwater", Description: "Ubiquitous bottom feeder, the start of every angler's career."},
	{ID: "f_2", Name: "Largemouth Bass", Category: "freshwater", Description: "Aggressive predator and the classic lure-fishing target."},
	{ID: "f_3", Name: "Topmouth Culter", Category: "freshwater", Description: "Fast, greedy surface hunter of rivers and reservoirs."},
	{ID: "f_4", Name: "Mandarin Fish", Category: "freshwater", Description: "Prized table fish of poems and spring floods."},
	{ID: "f_5", Name: "Bluefin Tuna", Category: "saltwater", Description: "The Ferrari of the sea; a top-tier test of strength and speed."},
	{ID: "f_6", Name: "Red Seabream", Category: "saltwater", Description: "Brilliant red scales, a symbol of good fortune."},
	{ID: "f_7", Name: "Tilapia", Category: "freshwater", Description: "Nearly indestructible; thrives where little else does."},
	{ID: "f_8", Name: "Yellowcheek Carp", Category: "freshwater", Description: "Apex freshwater predator capable of swallowing sizeable fish."},
}
