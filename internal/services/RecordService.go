package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/store"
)

var (
	ErrNoImage              = errors.New("missing image reference")
	ErrNoSpecies            = errors.New("missing species name")
	ErrNoSpot               = errors.New("no fishing spot selected")
	ErrNoGear               = errors.New("no gear set selected")
	ErrUnresolvedDivergence = errors.New("gear divergence requires a resolution before submission")
)

// LastConfig is the "last used" preference persisted after each submission
// and offered as prefill on the next session.
type LastConfig struct {
	GearID string `json:"gearId"`
	SpotID string `json:"spotId"`
}

type RecordServiceInterface interface {
	Submit(ctx context.Context, draft *RecordDraft) (models.FishRecord, error)
	Records(ctx context.Context, ownerID string) ([]models.FishRecord, error)
	RecentSpecies(ctx context.Context, ownerID string, limit int) ([]string, error)
	LastUsed() (LastConfig, bool, error)
}

type RecordService struct {
	engine   *store.Engine
	records  *store.Collection[models.FishRecord]
	gearSets *store.Collection[models.GearSet]
	bus      providers.BusProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewRecordService(engine *store.Engine, bus providers.BusProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) RecordServiceInterface {
	return &RecordService{
		engine:   engine,
		records:  store.NewCollection[models.FishRecord](engine, store.CollectionRecords),
		gearSets: store.NewCollection[models.GearSet](engine, store.CollectionGearSets),
		bus:      bus,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit runs the terminal workflow action: validates preconditions,
// executes the gear resolution, classifies the catch and persists the
// record. Nothing is written if any precondition fails.
func (rs *RecordService) Submit(ctx context.Context, draft *RecordDraft) (models.FishRecord, error) {
	var zero models.FishRecord

	if err := rs.checkPreconditions(draft); err != nil {
		return zero, err
	}

	gear := *draft.Gear()
	spot := *draft.Spot()
	working := draft.Working()

	finalGearID := gear.ID
	finalGearName := gear.Name

	if draft.Diverged() {
		switch draft.Mode() {
		case ResolveUpdateExisting:
			_, found, err := rs.gearSets.Update(ctx, gear.ID, func(g *models.GearSet) {
				g.Rod = working.Rod
				g.Reel = working.Reel
				g.Line = working.Line
				g.Hook = working.Hook
			})
			if err != nil {
				return zero, err
			}
			if !found {
				rs.logger.Warnf(providers.TypeApp, "Gear set %s vanished before update, keeping snapshot only", gear.ID)
			}
		case ResolveCreateNew:
			fork := models.GearSet{
				ID:      models.NewID("g"),
				OwnerID: draft.ownerID,
				Name:    draft.newGearName,
				Rod:     working.Rod,
				Reel:    working.Reel,
				Line:    working.Line,
				Hook:    working.Hook,
			}
			if err := rs.gearSets.Create(ctx, fork); err != nil {
				return zero, err
			}
			finalGearID = fork.ID
			finalGearName = fork.Name
		}
	}

	now := time.Now()
	rec := models.FishRecord{
		ID:           models.NewID("r"),
		OwnerID:      draft.ownerID,
		Species:      draft.species,
		Length:       draft.length,
		Weight:       draft.weight,
		Rarity:       models.ClassifyCatch(draft.weight, draft.length),
		ImageRef:     draft.imageRef,
		GearRefID:    finalGearID,
		GearRefName:  finalGearName,
		SpotRefID:    spot.ID,
		SpotRefName:  spot.Name,
		GearSnapshot: working,
		Tags:         draft.tags,
		Note:         draft.note,
		Timestamp:    models.UnixMillis(draft.loggedAt),
	}

	if draft.Backfill(now) {
		rec.Environment = models.EnvData{Tide: "unrecorded", Location: &models.GeoPoint{Name: spot.Name}}
		rec.ManualWeather = draft.manualWeather
	} else {
		rec.Environment = simulateEnvironment(draft.loggedAt, spot.Name)
	}

	if err := rs.records.Create(ctx, rec); err != nil {
		return zero, err
	}

	if err := rs.engine.PutRaw(store.KeyLastConfig, LastConfig{GearID: finalGearID, SpotID: spot.ID}); err != nil {
		rs.logger.Warnf(providers.TypeApp, "Failed to persist last-used preference: %s", err)
	}

	rs.metrics.IncCatchesLogged(string(rec.Rarity))
	rs.logger.Infof(providers.TypeApp, "Catch logged: %s (%s) by %s", rec.Species, rec.Rarity, rec.OwnerID)
	rs.bus.PublishRecordAdded(providers.RecordAddedEvent{Record: rec})

	draft.reset()
	return rec, nil
}

func (rs *RecordService) checkPreconditions(draft *RecordDraft) error {
	if draft.imageRef == "" {
		return ErrNoImage
	}
	if draft.species == "" {
		return ErrNoSpecies
	}
	if draft.Spot() == nil {
		return ErrNoSpot
	}
	if draft.Gear() == nil {
		return ErrNoGear
	}
	if draft.Diverged() && draft.State() != StateResolved {
		return ErrUnresolvedDivergence
	}
	return nil
}

// Records returns the account's catches, newest first. Storage order is
// not semantic; ordering is reimposed here by timestamp.
func (rs *RecordService) Records(ctx context.Context, ownerID string) ([]models.FishRecord, error) {
	all, err := rs.records.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.FishRecord, 0, len(all))
	for _, r := range all {
		if r.OwnerID == ownerID {
			mine = append(mine, r)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Timestamp > mine[j].Timestamp })
	return mine, nil
}

// RecentSpecies lists the distinct species of the account's latest records,
// used for quick prefill.
func (rs *RecordService) RecentSpecies(ctx context.Context, ownerID string, limit int) ([]string, error) {
	mine, err := rs.Records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var species []string
	for _, r := range mine {
		if _, ok := seen[r.Species]; ok {
			continue
		}
		seen[r.Species] = struct{}{}
		species = append(species, r.Species)
		if len(species) == limit {
			break
		}
	}
	return species, nil
}

func (rs *RecordService) LastUsed() (LastConfig, bool, error) {
	var pref LastConfig
	ok, err := rs.engine.GetRaw(store.KeyLastConfig, &pref)
	return pref, ok, err
}

// simulateEnvironment fabricates plausible ambient pressure/tide data for
// a live (non-backfill) entry. Real sensor integration is out of scope.
func simulateEnvironment(loggedAt time.Time, spotName string) models.EnvData {
	tide := "slack"
	if hour := loggedAt.Hour(); hour >= 6 && hour <= 18 {
		if rand.IntN(2) == 0 {
			tide = "rising"
		} else {
			tide = "ebbing"
		}
	}
	return models.EnvData{
		Pressure: 1000 + rand.IntN(15),
		Tide:     tide,
		Location: &models.GeoPoint{Name: spotName},
	}
}
