package services

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
)

// characterResolver adapts the character repository to the resolver port.
type characterResolver struct {
	repo portsrepo.CharacterRepository
}

// NewCharacterResolver creates a resolver backed by the character repository.
func NewCharacterResolver(repo portsrepo.CharacterRepository) portssvc.CharacterResolver {
	return &characterResolver{repo: repo}
}

var _ portssvc.CharacterResolver = (*characterResolver)(nil)

func (r *characterResolver) ResolveCharacter(ctx context.Context, sessionID string) (*domain.Character, error) {
	return r.repo.FindCharacterBySession(ctx, sessionID)
}
