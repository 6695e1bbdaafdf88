package service

import (
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/internal/metrics"
)

// ResolveIdentity resolves a bearer credential and records the trust tier it
// resolved at.
func (s *Service) ResolveIdentity(credential string) identity.ResolvedIdentity {
	id := s.resolver.Resolve(credential)
	tier := string(id.Tier)
	if !id.Resolved() {
		tier = "unresolved"
	}
	metrics.IdentityResolutions.WithLabelValues(tier).Inc()
	return id
}
