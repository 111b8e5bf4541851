package usecase

import (
	"context"

	"go-application-tracker/internal/domain"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// GetCurrentUser loads the user row for an authenticated subject. The
// stored role is authoritative; token claims are never trusted for it.
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ResolveAutomationActor finds the system-designated bot principal that
// scheduled batches run as. Returns domain.ErrNotFound when no bot user
// exists; callers treat that as a skip, not a failure.
func (uc *authUsecase) ResolveAutomationActor(ctx context.Context) (*domain.User, error) {
	return uc.userRepo.FindFirstByRole(ctx, domain.RoleBot)
}
