package models

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
)

// ClassifyCatch assigns a rarity tier from the measured weight (kg) and
// length (cm). Thresholds are evaluated top down; missing or negative
// measurements count as zero.
func ClassifyCatch(weightKg, lengthCm float64) Rarity {
	if weightKg < 0 {
		weightKg = 0
	}
	if lengthCm < 0 {
		lengthCm = 0
	}

	switch {
	case weightKg > 8 || lengthCm > 80:
		return RarityLegendary
	case weightKg > 3 || lengthCm > 45:
		return RarityRare
	default:
		return RarityCommon
	}
}
