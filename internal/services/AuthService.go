package services

import (
	"context"
	"errors"
	"sync"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/store"
)

var (
	ErrUnknownUser   = errors.New("unknown username")
	ErrAccountBanned = errors.New("account is banned")
	ErrNotLoggedIn   = errors.New("no active session")
)

type AuthServiceInterface interface {
	Login(ctx context.Context, username string) (models.Account, error)
	Logout() error
	Current() (models.Account, bool)
	UpdateProfile(ctx context.Context, displayName, avatar string) (models.Account, error)
}

// AuthService holds the single local session. The session survives
// restarts via its own substrate key; username doubles as the credential
// in this prototype.
type AuthService struct {
	mu       sync.RWMutex
	engine   *store.Engine
	accounts *store.Collection[models.Account]
	bus      providers.BusProviderInterface
	logger   providers.Logger
	current  *models.Account
}

func NewAuthService(engine *store.Engine, bus providers.BusProviderInterface, logger providers.Logger) AuthServiceInterface {
	as := &AuthService{
		engine:   engine,
		accounts: store.NewCollection[models.Account](engine, store.CollectionAccounts),
		bus:      bus,
		logger:   logger,
	}

	var session models.Account
	ok, err := engine.GetRaw(store.KeySession, &session)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Discarding unreadable session: %s", err)
	} else if ok {
		as.current = &session
		logger.Infof(providers.TypeApp, "Restored session for %s", session.Username)
	}
	return as
}

func (as *AuthService) Login(ctx context.Context, username string) (models.Account, error) {
	var zero models.Account

	account, found, err := as.accounts.FindOne(ctx, func(a models.Account) bool {
		return a.Username == username
	})
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, ErrUnknownUser
	}
	if account.Status == models.StatusBanned {
		return zero, ErrAccountBanned
	}

	if err := as.engine.PutRaw(store.KeySession, account); err != nil {
		return zero, err
	}

	as.mu.Lock()
	as.current = &account
	as.mu.Unlock()

	as.logger.Infof(providers.TypeApp, "Login: %s (%s)", account.Username, account.Role)
	as.bus.PublishAuthChanged(providers.AuthChangedEvent{Account: &account})
	return account, nil
}

func (as *AuthService) Logout() error {
	as.mu.Lock()
	as.current = nil
	as.mu.Unlock()

	if err := as.engine.DeleteRaw(store.KeySession); err != nil {
		return err
	}
	as.bus.PublishAuthChanged(providers.AuthChangedEvent{Account: nil})
	return nil
}

func (as *AuthService) Current() (models.Account, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if as.current == nil {
		return models.Account{}, false
	}
	return *as.current, true
}

// UpdateProfile changes the mutable profile subset (display name, avatar)
// of the logged-in account. Empty arguments leave the field untouched.
func (as *AuthService) UpdateProfile(ctx context.Context, displayName, avatar string) (models.Account, error) {
	var zero models.Account

	current, ok := as.Current()
	if !ok {
		return zero, ErrNotLoggedIn
	}

	updated, found, err := as.accounts.Update(ctx, current.ID, func(a *models.Account) {
		if displayName != "" {
			a.DisplayName = displayName
		}
		if avatar != "" {
			a.Avatar = avatar
		}
	})
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, ErrUnknownUser
	}

	if err := as.engine.PutRaw(store.KeySession, updated); err != nil {
		return zero, err
	}

	as.mu.Lock()
	as.current = &updated
	as.mu.Unlock()

	as.bus.PublishAuthChanged(providers.AuthChangedEvent{Account: &updated})
	return updated, nil
}
