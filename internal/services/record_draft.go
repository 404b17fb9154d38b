package services

import (
	"errors"
	"time"

	"zhiyu/internal/models"
)

type DraftState int

const (
	// StateConfiguring: gear/spot selection and free editing, no divergence.
	StateConfiguring DraftState = iota
	// StateReconcileRequired: working snapshot differs from the loaded gear
	// set and no resolution has been made.
	StateReconcileRequired
	// StateResolved: divergence exists and a resolution is in place.
	StateResolved
)

func (s DraftState) String() string {
	switch s {
	case StateReconcileRequired:
		return "reconcile-required"
	case StateResolved:
		return "resolved"
	default:
		return "configuring"
	}
}

// ResolveMode is the operator's answer to a detected gear divergence.
type ResolveMode string

const (
	// ResolveSnapshotOnly: divergent values apply to this record alone.
	ResolveSnapshotOnly ResolveMode = "snapshot-only"
	// ResolveUpdateExisting: divergent values are written back to the
	// referenced gear set.
	ResolveUpdateExisting ResolveMode = "update-existing"
	// ResolveCreateNew: a new gear set is created from the divergent values
	// and the record references it instead.
	ResolveCreateNew ResolveMode = "create-new"
)

var (
	ErrNoDivergence   = errors.New("no gear divergence to resolve")
	ErrUnknownResolve = errors.New("unknown resolution mode")
	ErrUnnamedGearSet = errors.New("create-new resolution requires a gear set name")
)

// RecordDraft is the record-creation workflow state. Every edit to a
// working snapshot field re-runs the divergence check against the
// originally loaded gear values and discards any previously made
// resolution: a resolution is only ever valid against the current diff.
type RecordDraft struct {
	ownerID string

	gear     *models.GearSet
	spot     *models.FishingSpot
	original models.GearSnapshot
	working  models.GearSnapshot

	state       DraftState
	mode        ResolveMode
	newGearName string

	species       string
	weight        float64
	length        float64
	imageRef      string
	tags          []string
	note          string
	loggedAt      time.Time
	manualWeather string
}

func NewRecordDraft(ownerID string) *RecordDraft {
	return &RecordDraft{
		ownerID:  ownerID,
		state:    StateConfiguring,
		mode:     ResolveSnapshotOnly,
		loggedAt: time.Now(),
	}
}

// SelectGear loads a gear set: its values become both the original
// reference and the working snapshot, and any prior resolution is dropped.
func (d *RecordDraft) SelectGear(g models.GearSet) {
	d.gear = &g
	d.original = g.Snapshot()
	d.working = d.original
	d.mode = ResolveSnapshotOnly
	d.newGearName = ""
	d.state = StateConfiguring
}

func (d *RecordDraft) SelectSpot(s models.FishingSpot) {
	d.spot = &s
}

func (d *RecordDraft) SetRod(v string)  { d.working.Rod = v; d.recheck() }
func (d *RecordDraft) SetReel(v string) { d.working.Reel = v; d.recheck() }
func (d *RecordDraft) SetLine(v string) { d.working.Line = v; d.recheck() }
func (d *RecordDraft) SetHook(v string) { d.working.Hook = v; d.recheck() }

// recheck is the transition guard run after every working-field edit. It
// invalidates a made resolution unconditionally: the diff it was made
// against no longer exists.
func (d *RecordDraft) recheck() {
	if len(d.Divergence()) == 0 {
		d.state = StateConfiguring
		return
	}
	d.state = StateReconcileRequired
}

// Divergence reports which snapshot fields differ from the originally
// loaded gear values, field by field.
func (d *RecordDraft) Divergence() []string {
	if d.gear == nil {
		return nil
	}
	var diff []string
	if d.working.Rod != d.original.Rod {
		diff = append(diff, "rod")
	}
	if d.working.Reel != d.original.Reel {
		diff = append(diff, "reel")
	}
	if d.working.Line != d.original.Line {
		diff = append(diff, "line")
	}
	if d.working.Hook != d.original.Hook {
		diff = append(diff, "hook")
	}
	return diff
}

func (d *RecordDraft) Diverged() bool {
	return len(d.Divergence()) > 0
}

// Resolve records the operator's choice for the current divergence. The
// choice is complete only when its required inputs are present; create-new
// additionally needs a non-empty name.
func (d *RecordDraft) Resolve(mode ResolveMode, newGearName string) error {
	if d.state != StateReconcileRequired {
		return ErrNoDivergence
	}
	switch mode {
	case ResolveSnapshotOnly, ResolveUpdateExisting:
	case ResolveCreateNew:
		if newGearName == "" {
			return ErrUnnamedGearSet
		}
	default:
		return ErrUnknownResolve
	}
	d.mode = mode
	d.newGearName = newGearName
	d.state = StateResolved
	return nil
}

// Reopen discards a made resolution, returning to reconcile-required.
func (d *RecordDraft) Reopen() {
	if d.state == StateResolved {
		d.state = StateReconcileRequired
	}
}

func (d *RecordDraft) SetSpecies(v string)       { d.species = v }
func (d *RecordDraft) SetImageRef(v string)      { d.imageRef = v }
func (d *RecordDraft) SetTags(tags []string)     { d.tags = tags }
func (d *RecordDraft) SetNote(v string)          { d.note = v }
func (d *RecordDraft) SetLoggedAt(t time.Time)   { d.loggedAt = t }
func (d *RecordDraft) SetManualWeather(v string) { d.manualWeather = v }

func (d *RecordDraft) SetMeasurements(weightKg, lengthCm float64) {
	d.weight = weightKg
	d.length = lengthCm
}

// Backfill reports whether the logged time is far enough from now that
// automatic environmental enrichment must be skipped.
func (d *RecordDraft) Backfill(now time.Time) bool {
	diff := now.Sub(d.loggedAt)
	if diff < 0 {
		diff = -diff
	}
	return diff > time.Hour
}

func (d *RecordDraft) State() DraftState            { return d.state }
func (d *RecordDraft) Mode() ResolveMode            { return d.mode }
func (d *RecordDraft) Working() models.GearSnapshot { return d.working }
func (d *RecordDraft) Gear() *models.GearSet        { return d.gear }
func (d *RecordDraft) Spot() *models.FishingSpot    { return d.spot }

// reset clears per-entry fields after a successful submission, keeping the
// gear/spot selection for the next catch.
func (d *RecordDraft) reset() {
	d.species = ""
	d.weight = 0
	d.length = 0
	d.imageRef = ""
	d.tags = nil
	d.note = ""
	d.newGearName = ""
	d.loggedAt = time.Now()
	d.recheck()
}
