package store

import (
	"context"
	"time"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
)

// Bootstrapper populates baseline reference data on a fresh store so the
// app is usable with no prior state. The guard is data presence (a
// non-empty accounts collection), not a separate initialized flag, which
// makes it safe to run on every start.
type Bootstrapper struct {
	engine *Engine
	logger providers.Logger
}

func NewBootstrapper(engine *Engine, logger providers.Logger) *Bootstrapper {
	return &Bootstrapper{engine: engine, logger: logger}
}

func (b *Bootstrapper) Bootstrap(ctx context.Context) error {
	accounts := NewCollection[models.Account](b.engine, CollectionAccounts)

	existing, err := accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		b.logger.Debugf(providers.TypeApp, "Store already populated (%d accounts), skipping seed", len(existing))
		return nil
	}

	b.logger.Infof(providers.TypeApp, "Fresh store detected, seeding baseline data")
	now := models.UnixMillis(time.Now())

	seedAccounts := []models.Account{
		{ID: "u_1", Username: "admin", DisplayName: "System Admin", Role: models.RoleAdmin, Status: models.StatusActive, CreatedAt: now},
		{ID: "u_2", Username: "fisher", DisplayName: "Veteran Angler", Role: models.RoleUser, Status: models.StatusActive, CreatedAt: now},
	}
	if err := accounts.persist(seedAccounts); err != nil {
		return err
	}

	records := NewCollection[models.FishRecord](b.engine, CollectionRecords)
	if err := records.persist([]models.FishRecord{}); err != nil {
		return err
	}

	messages := NewCollection[models.SystemMessage](b.engine, CollectionMessages)
	welcome := []models.SystemMessage{
		{
			ID:        "m_1",
			Title:     "Welcome to Zhiyu",
			Body:      "Start your legendary fishing career and log every great moment.",
			Severity:  models.SeveritySuccess,
			CreatedAt: now,
			IsRead:    false,
		},
	}
	if err := messages.persist(welcome); err != nil {
		return err
	}

	gearSets := NewCollection[models.GearSet](b.engine, CollectionGearSets)
	seedGear := []models.GearSet{
		{
			ID:      "g_1",
			OwnerID: "u_2",
			Name:    "Ultralight Lure Combo",
			Rod:     "Luremaster UL 1.8m",
			Reel:    "Shimano Stradic 1000",
			Line:    "0.6 PE + 4lb leader",
			Hook:    "Micro offset hook",
		},
		{
			ID:      "g_2",
			OwnerID: "u_2",
			Name:    "Pond Float Setup",
			Rod:     "Carbon pole 4.5m",
			Line:    "2.0 main + 1.2 tippet",
			Hook:    "Kanto 0.5#",
		},
	}
	if err := gearSets.persist(seedGear); err != nil {
		return err
	}

	spots := NewCollection[models.FishingSpot](b.engine, CollectionSpots)
	seedSpots := []models.FishingSpot{
		{ID: "s_1", OwnerID: "u_2", Name: "Old Zhang's Pond", Category: "pay pond"},
		{ID: "s_2", OwnerID: "u_2", Name: "Thousand Island Lake", Category: "reservoir"},
	}
	if err := spots.persist(seedSpots); err != nil {
		return err
	}

	b.logger.Infof(providers.TypeApp, "Seeded %d accounts, %d gear sets, %d spots", len(seedAccounts), len(seedGear), len(seedSpots))
	return nil
}
