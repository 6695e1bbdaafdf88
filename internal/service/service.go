// Package service implements the use cases of the mentorship API on top of
// the store, the inbox pipeline, the identity resolver and the access policy.
package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/config"
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/internal/inbox"
	"github.com/mentorlane/api/internal/repository"
	"github.com/mentorlane/api/policy"
)

type Service struct {
	store        store.Store
	config       *config.Config
	policyEngine *policy.Engine
	inbox        *inbox.Inbox
	resolver     *identity.Resolver
	logger       zerolog.Logger
	now          func() time.Time
}

func New(store store.Store, cfg *config.Config, policyEngine *policy.Engine, logger zerolog.Logger) *Service {
	return &Service{
		store:        store,
		config:       cfg,
		policyEngine: policyEngine,
		inbox:        inbox.New(store, store, logger),
		resolver:     identity.NewResolver(cfg.JWTSecret, logger),
		logger:       logger.With().Str("component", "service").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.config
}
