package services

import (
	"context"
	"sort"
	"time"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/store"
)

type DashboardStats struct {
	Accounts int `json:"accounts"`
	Records  int `json:"records"`
	Messages int `json:"messages"`
}

type AdminServiceInterface interface {
	Accounts(ctx context.Context) ([]models.Account, error)
	SetAccountStatus(ctx context.Context, id string, status models.AccountStatus) (models.Account, bool, error)
	Broadcast(ctx context.Context, title, body string, severity models.MessageSeverity) (models.SystemMessage, error)
	Announcements(ctx context.Context) ([]models.SystemMessage, error)
	Dashboard(ctx context.Context) (DashboardStats, error)
}

type AdminService struct {
	accounts *store.Collection[models.Account]
	records  *store.Collection[models.FishRecord]
	messages *store.Collection[models.SystemMessage]
	bus      providers.BusProviderInterface
	logger   providers.Logger
}

func NewAdminService(engine *store.Engine, bus providers.BusProviderInterface, logger providers.Logger) AdminServiceInterface {
	return &AdminService{
		accounts: store.NewCollection[models.Account](engine, store.CollectionAccounts),
		records:  store.NewCollection[models.FishRecord](engine, store.CollectionRecords),
		messages: store.NewCollection[models.SystemMessage](engine, store.CollectionMessages),
		bus:      bus,
		logger:   logger,
	}
}

func (s *AdminService) Accounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AdminService) SetAccountStatus(ctx context.Context, id string, status models.AccountStatus) (models.Account, bool, error) {
	updated, found, err := s.accounts.Update(ctx, id, func(a *models.Account) {
		a.Status = status
	})
	if found {
		s.logger.Infof(providers.TypeApp, "Account %s status set to %s", id, status)
	}
	return updated, found, err
}

// Broadcast creates a system announcement and notifies subscribers.
func (s *AdminService) Broadcast(ctx context.Context, title, body string, severity models.MessageSeverity) (models.SystemMessage, error) {
	if title == "" || body == "" {
		return models.SystemMessage{}, ErrMissingFields
	}
	if severity == "" {
		severity = models.SeverityInfo
	}

	msg := models.SystemMessage{
		ID:        models.NewID("m"),
		Title:     title,
		Body:      body,
		Severity:  severity,
		CreatedAt: models.UnixMillis(time.Now()),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return models.SystemMessage{}, err
	}

	s.logger.Infof(providers.TypeApp, "Announcement broadcast: %s", msg.Title)
	s.bus.PublishAnnouncementPosted(providers.AnnouncementPostedEvent{Message: msg})
	return msg, nil
}

// Announcements returns all system messages, newest first.
func (s *AdminService) Announcements(ctx context.Context) ([]models.SystemMessage, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt > msgs[j].CreatedAt })
	return msgs, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return stats, err
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return stats, err
	}
	messages, err := s.messages.List(ctx)
	if err != nil {
		return stats, err
	}

	stats.Accounts = len(accounts)
	stats.Records = len(records)
	stats.Messages = len(messages)
	return stats, nil
}
