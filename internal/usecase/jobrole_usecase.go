package usecase

import (
	"context"
	"errors"

	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"
)

type jobRoleUsecase struct {
	jobRoleRepo domain.JobRoleRepository
}

func NewJobRoleUsecase(jobRoleRepo domain.JobRoleRepository) domain.JobRoleUsecase {
	return &jobRoleUsecase{jobRoleRepo: jobRoleRepo}
}

func validateJobRole(role *domain.JobRole) error {
	if role.Title == "" || role.Description == "" || role.Department == "" {
		return apperror.BadRequest("Title, description and department are required")
	}
	if role.Type != domain.RoleTypeTechnical && role.Type != domain.RoleTypeNonTechnical {
		return apperror.BadRequest("Type must be technical or non-technical")
	}
	return nil
}

func (uc *jobRoleUsecase) Create(ctx context.Context, actor *domain.User, role *domain.JobRole) error {
	if err := validateJobRole(role); err != nil {
		return err
	}

	role.CreatedBy = actor.ID
	if err := uc.jobRoleRepo.Create(ctx, role); err != nil {
		return apperror.Unavailable("Could not save job role", err)
	}
	return nil
}

func (uc *jobRoleUsecase) Get(ctx context.Context, id int64) (*domain.JobRole, error) {
	role, err := uc.jobRoleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job role not found")
		}
		return nil, apperror.Unavailable("Could not load job role", err)
	}
	return role, nil
}

func (uc *jobRoleUsecase) List(ctx context.Context) ([]domain.JobRole, error) {
	roles, err := uc.jobRoleRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Unavailable("Could not list job roles", err)
	}
	return roles, nil
}

func (uc *jobRoleUsecase) Update(ctx context.Context, actor *domain.User, role *domain.JobRole) error {
	if err := validateJobRole(role); err != nil {
		return err
	}

	if err := uc.jobRoleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job role not found")
		}
		return apperror.Unavailable("Could not update job role", err)
	}
	return nil
}

// Delete removes the role itself. Existing applications keep their
// reference to the deleted role.
func (uc *jobRoleUsecase) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := uc.jobRoleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job role not found")
		}
		return apperror.Unavailable("Could not delete job role", err)
	}
	return nil
}
