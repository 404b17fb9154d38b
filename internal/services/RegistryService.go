package services

import (
	"context"
	"errors"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/store"
)

var ErrMissingFields = errors.New("missing required fields")

// RegistryServiceInterface manages the two user-owned reference registries
// the record workflow consumes: gear sets and fishing spots.
type RegistryServiceInterface interface {
	MyGear(ctx context.Context, ownerID string) ([]models.GearSet, error)
	GearByID(ctx context.Context, id string) (models.GearSet, bool, error)
	CreateGear(ctx context.Context, gear models.GearSet) (models.GearSet, error)
	UpdateGear(ctx context.Context, id string, apply func(*models.GearSet)) (models.GearSet, bool, error)
	DeleteGear(ctx context.Context, id string) (bool, error)

	MySpots(ctx context.Context, ownerID string) ([]models.FishingSpot, error)
	SpotByID(ctx context.Context, id string) (models.FishingSpot, bool, error)
	CreateSpot(ctx context.Context, spot models.FishingSpot) (models.FishingSpot, error)
	UpdateSpot(ctx context.Context, id string, apply func(*models.FishingSpot)) (models.FishingSpot, bool, error)
	DeleteSpot(ctx context.Context, id string) (bool, error)
}

type RegistryService struct {
	gearSets *store.Collection[models.GearSet]
	spots    *store.Collection[models.FishingSpot]
	logger   providers.Logger
}

func NewRegistryService(engine *store.Engine, logger providers.Logger) RegistryServiceInterface {
	return &RegistryService{
		gearSets: store.NewCollection[models.GearSet](engine, store.CollectionGearSets),
		spots:    store.NewCollection[models.FishingSpot](engine, store.CollectionSpots),
		logger:   logger,
	}
}

func (r *RegistryService) MyGear(ctx context.Context, ownerID string) ([]models.GearSet, error) {
	all, err := r.gearSets.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.GearSet, 0, len(all))
	for _, g := range all {
		if g.OwnerID == ownerID {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

func (r *RegistryService) GearByID(ctx context.Context, id string) (models.GearSet, bool, error) {
	return r.gearSets.FindByID(ctx, id)
}

func (r *RegistryService) CreateGear(ctx context.Context, gear models.GearSet) (models.GearSet, error) {
	if gear.OwnerID == "" || gear.Name == "" {
		return models.GearSet{}, ErrMissingFields
	}
	if gear.ID == "" {
		gear.ID = models.NewID("g")
	}
	if err := r.gearSets.Create(ctx, gear); err != nil {
		return models.GearSet{}, err
	}
	r.logger.Infof(providers.TypeApp, "Gear set created: %s (%s)", gear.Name, gear.ID)
	return gear, nil
}

func (r *RegistryService) UpdateGear(ctx context.Context, id string, apply func(*models.GearSet)) (models.GearSet, bool, error) {
	return r.gearSets.Update(ctx, id, apply)
}

// DeleteGear removes a gear set. Catch records referencing it keep their
// snapshot; the dangling reference is by design.
func (r *RegistryService) DeleteGear(ctx context.Context, id string) (bool, error) {
	return r.gearSets.Delete(ctx, id)
}

func (r *RegistryService) MySpots(ctx context.Context, ownerID string) ([]models.FishingSpot, error) {
	all, err := r.spots.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.FishingSpot, 0, len(all))
	for _, s := range all {
		if s.OwnerID == ownerID {
			mine = append(mine, s)
		}
	}
	return mine, nil
}

func (r *RegistryService) SpotByID(ctx context.Context, id string) (models.FishingSpot, bool, error) {
	return r.spots.FindByID(ctx, id)
}

func (r *RegistryService) CreateSpot(ctx context.Context, spot models.FishingSpot) (models.FishingSpot, error) {
	if spot.OwnerID == "" || spot.Name == "" {
		return models.FishingSpot{}, ErrMissingFields
	}
	if spot.ID == "" {
		spot.ID = models.NewID("s")
	}
	if err := r.spots.Create(ctx, spot); err != nil {
		return models.FishingSpot{}, err
	}
	r.logger.Infof(providers.TypeApp, "Spot created: %s (%s)", spot.Name, spot.ID)
	return spot, nil
}

func (r *RegistryService) UpdateSpot(ctx context.Context, id string, apply func(*models.FishingSpot)) (models.FishingSpot, bool, error) {
	return r.spots.Update(ctx, id, apply)
}

func (r *RegistryService) DeleteSpot(ctx context.Context, id string) (bool, error) {
	return r.spots.Delete(ctx, id)
}
