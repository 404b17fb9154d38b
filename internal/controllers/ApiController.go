package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/services"
	"zhiyu/internal/store"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger   providers.Logger
	auth     services.AuthServiceInterface
	registry services.RegistryServiceInterface
	records  services.RecordServiceInterface
	admin    services.AdminServiceInterface
	cache    providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, auth services.AuthServiceInterface, registry services.RegistryServiceInterface, records services.RecordServiceInterface, admin services.AdminServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		auth:     auth,
		registry: registry,
		records:  records,
		admin:    admin,
		cache:    cache,
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, status int, err error) {
	ac.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (ac *ApiController) requireUser(w http.ResponseWriter) (models.Account, bool) {
	account, ok := ac.auth.Current()
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return models.Account{}, false
	}
	return account, true
}

func (ac *ApiController) requireAdmin(w http.ResponseWriter) (models.Account, bool) {
	account, ok := ac.requireUser(w)
	if !ok {
		return models.Account{}, false
	}
	if account.Role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return models.Account{}, false
	}
	return account, true
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// --- auth ---

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	account, err := ac.auth.Login(r.Context(), payload.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownUser), errors.Is(err, services.ErrAccountBanned):
			ac.writeError(w, http.StatusUnauthorized, err)
		default:
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}
	ac.writeJSON(w, http.StatusOK, account)
}

func (ac *ApiController) Logout(w http.ResponseWriter, _ *http.Request) {
	if err := ac.auth.Logout(); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Me(w http.ResponseWriter, _ *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	ac.writeJSON(w, http.StatusOK, account)
}

func (ac *ApiController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireUser(w); !ok {
		return
	}
	var payload struct {
		DisplayName string `json:"displayName"`
		Avatar      string `json:"avatar"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := ac.auth.UpdateProfile(r.Context(), payload.DisplayName, payload.Avatar)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusOK, updated)
}

// --- records ---

func (ac *ApiController) ListRecords(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	ac.serveFromCacheOrCompute(w, "records:"+account.ID, func() (any, error) {
		return ac.records.Records(r.Context(), account.ID)
	})
}

type createRecordRequest struct {
	GearSetID      string              `json:"gearSetId"`
	SpotID         string              `json:"spotId"`
	Snapshot       models.GearSnapshot `json:"snapshot"`
	GearSaveMode   string              `json:"gearSaveMode,omitempty"`
	NewGearSetName string              `json:"newGearSetName,omitempty"`
	Species        string              `json:"species"`
	Length         float64             `json:"length"`
	Weight         float64             `json:"weight"`
	ImageRef       string              `json:"imageRef"`
	Tags           []string            `json:"tags"`
	Note           string              `json:"note"`
	ManualWeather  string              `json:"manualWeather,omitempty"`
	Timestamp      int64               `json:"timestamp,omitempty"`
}

// CreateRecord drives the record-creation workflow end to end for one
// submission: selection, snapshot edits, divergence resolution, submit.
func (ac *ApiController) CreateRecord(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var payload createRecordRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	draft := services.NewRecordDraft(account.ID)

	if payload.GearSetID != "" {
		gear, found, err := ac.registry.GearByID(r.Context(), payload.GearSetID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if found && gear.OwnerID == account.ID {
			draft.SelectGear(gear)
			draft.SetRod(payload.Snapshot.Rod)
			draft.SetReel(payload.Snapshot.Reel)
			draft.SetLine(payload.Snapshot.Line)
			draft.SetHook(payload.Snapshot.Hook)
		}
	}
	if payload.SpotID != "" {
		spot, found, err := ac.registry.SpotByID(r.Context(), payload.SpotID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if found && spot.OwnerID == account.ID {
			draft.SelectSpot(spot)
		}
	}

	draft.SetSpecies(payload.Species)
	draft.SetMeasurements(payload.Weight, payload.Length)
	draft.SetImageRef(payload.ImageRef)
	draft.SetTags(payload.Tags)
	draft.SetNote(payload.Note)
	draft.SetManualWeather(payload.ManualWeather)
	if payload.Timestamp > 0 {
		draft.SetLoggedAt(time.UnixMilli(payload.Timestamp))
	}

	if draft.Diverged() && payload.GearSaveMode != "" {
		if err := draft.Resolve(services.ResolveMode(payload.GearSaveMode), payload.NewGearSetName); err != nil {
			ac.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	rec, err := ac.records.Submit(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoImage),
			errors.Is(err, services.ErrNoSpecies),
			errors.Is(err, services.ErrNoSpot),
			errors.Is(err, services.ErrNoGear),
			errors.Is(err, services.ErrUnresolvedDivergence):
			ac.writeError(w, http.StatusUnprocessableEntity, err)
		case errors.Is(err, store.ErrDuplicateID):
			ac.writeError(w, http.StatusConflict, err)
		default:
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	ac.cache.Del("records:" + account.ID)
	ac.cache.Del("dashboard")
	ac.writeJSON(w, http.StatusCreated, rec)
}

func (ac *ApiController) RecordPrefs(w http.ResponseWriter, _ *http.Request) {
	if _, ok := ac.requireUser(w); !ok {
		return
	}
	pref, found, err := ac.records.LastUsed()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ac.writeJSON(w, http.StatusOK, pref)
}

func (ac *ApiController) SpeciesHistory(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	species, err := ac.records.RecentSpecies(r.Context(), account.ID, 3)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusOK, species)
}

func (ac *ApiController) SpeciesCatalog(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "species", func() (any, error) {
		return models.SpeciesCatalog, nil
	})
}

// --- gear registry ---

func (ac *ApiController) ListGear(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	gear, err := ac.registry.MyGear(r.Context(), account.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusOK, gear)
}

func (ac *ApiController) CreateGear(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var gear models.GearSet
	if !decodeBody(w, r, &gear) {
		return
	}
	gear.ID = ""
	gear.OwnerID = account.ID

	created, err := ac.registry.CreateGear(r.Context(), gear)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			ac.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusCreated, created)
}

func (ac *ApiController) UpdateGear(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var payload models.GearSet
	if !decodeBody(w, r, &payload) {
		return
	}

	// A foreign id is indistinguishable from an absent one.
	existing, found, err := ac.registry.GearByID(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found || existing.OwnerID != account.ID {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	updated, found, err := ac.registry.UpdateGear(r.Context(), payload.ID, func(g *models.GearSet) {
		g.Name = payload.Name
		g.Rod = payload.Rod
		g.Reel = payload.Reel
		g.Line = payload.Line
		g.Hook = payload.Hook
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) DeleteGear(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var payload struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	existing, found, err := ac.registry.GearByID(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found || existing.OwnerID != account.ID {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	removed, err := ac.registry.DeleteGear(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- spot registry ---

func (ac *ApiController) ListSpots(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	spots, err := ac.registry.MySpots(r.Context(), account.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusOK, spots)
}

func (ac *ApiController) CreateSpot(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var spot models.FishingSpot
	if !decodeBody(w, r, &spot) {
		return
	}
	spot.ID = ""
	spot.OwnerID = account.ID

	created, err := ac.registry.CreateSpot(r.Context(), spot)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			ac.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusCreated, created)
}

func (ac *ApiController) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var payload models.FishingSpot
	if !decodeBody(w, r, &payload) {
		return
	}

	existing, found, err := ac.registry.SpotByID(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found || existing.OwnerID != account.ID {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	updated, found, err := ac.registry.UpdateSpot(r.Context(), payload.ID, func(s *models.FishingSpot) {
		s.Name = payload.Name
		s.Category = payload.Category
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	account, ok := ac.requireUser(w)
	if !ok {
		return
	}
	var payload struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	existing, found, err := ac.registry.SpotByID(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found || existing.OwnerID != account.ID {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	removed, err := ac.registry.DeleteSpot(r.Context(), payload.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- announcements / admin ---

func (ac *ApiController) ListMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireUser(w); !ok {
		return
	}
	ac.serveFromCacheOrCompute(w, "messages", func() (any, error) {
		return ac.admin.Announcements(r.Context())
	})
}

func (ac *ApiController) Broadcast(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireAdmin(w); !ok {
		return
	}
	var payload struct {
		Title    string                 `json:"title"`
		Body     string                 `json:"body"`
		Severity models.MessageSeverity `json:"severity"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	msg, err := ac.admin.Broadcast(r.Context(), payload.Title, payload.Body, payload.Severity)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			ac.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Del("messages")
	ac.cache.Del("dashboard")
	ac.writeJSON(w, http.StatusCreated, msg)
}

func (ac *ApiController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireAdmin(w); !ok {
		return
	}
	accounts, err := ac.admin.Accounts(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, http.StatusOK, accounts)
}

func (ac *ApiController) SetAccountStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireAdmin(w); !ok {
		return
	}
	var payload struct {
		ID     string               `json:"id"`
		Status models.AccountStatus `json:"status"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.Status != models.StatusActive && payload.Status != models.StatusBanned {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	updated, found, err := ac.admin.SetAccountStatus(r.Context(), payload.ID, payload.Status)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.cache.Del("dashboard")
	ac.writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := ac.requireAdmin(w); !ok {
		return
	}
	ac.serveFromCacheOrCompute(w, "dashboard", func() (any, error) {
		return ac.admin.Dashboard(r.Context())
	})
}
