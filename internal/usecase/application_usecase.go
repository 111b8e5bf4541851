package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRoleRepo     domain.JobRoleRepository
	activityRepo    domain.ActivityLogRepository
	validate        *validator.Validate
	strict          bool
}

// NewApplicationUsecase creates a new application usecase. strict enables
// single-step adjacency enforcement for admin manual transitions.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRoleRepo domain.JobRoleRepository,
	activityRepo domain.ActivityLogRepository,
	validate *validator.Validate,
	strict bool,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRoleRepo:     jobRoleRepo,
		activityRepo:    activityRepo,
		validate:        validate,
		strict:          strict,
	}
}

// Create submits a new application on behalf of the acting applicant.
// Every new application starts at "applied" and gets exactly one
// creation entry in the activity ledger.
func (uc *applicationUsecase) Create(ctx context.Context, actor *domain.User, input *domain.Application) (*domain.Application, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest("Resume and job role are required")
	}

	// The referenced job role must exist at submission time. Roles
	// deleted later leave a dangling reference by design.
	if _, err := uc.jobRoleRepo.GetByID(ctx, input.JobRoleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job role not found")
		}
		return nil, apperror.Unavailable("Could not verify job role", err)
	}

	input.ApplicantID = actor.ID
	input.Status = domain.StatusApplied
	input.IsAutomated = false

	if err := uc.applicationRepo.Create(ctx, input); err != nil {
		return nil, apperror.Unavailable("Could not save application", err)
	}

	entry := &domain.ActivityLogEntry{
		ApplicationID:   input.ID,
		Action:          "Application submitted",
		NewStatus:       domain.StatusApplied,
		PerformedBy:     actor.ID,
		PerformedByRole: actor.Role,
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return nil, apperror.Unavailable("Could not record activity", err)
	}

	return input, nil
}

// List returns applications visible to the actor's role.
func (uc *applicationUsecase) List(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.Fetch(ctx, visibilityFor(actor))
	if err != nil {
		return nil, apperror.Unavailable("Could not list applications", err)
	}
	return apps, nil
}

// Get returns one application with its activity trail, newest entries
// first, enforcing the same visibility rules as listing.
func (uc *applicationUsecase) Get(ctx context.Context, actor *domain.User, id int64) (*domain.ApplicationDetail, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Unavailable("Could not load application", err)
	}

	if !canSee(actor, app) {
		return nil, apperror.Forbidden("Access denied")
	}

	log, err := uc.activityRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, apperror.Unavailable("Could not load activity log", err)
	}

	return &domain.ApplicationDetail{Application: app, ActivityLog: log}, nil
}

// UpdateStatus performs a manual transition by an admin or the bot.
// Admin moves follow the lax/strict mode; the bot may only advance one
// step. Exactly one ledger entry is appended per successful transition.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, actor *domain.User, id int64, status string, comment *string) (*domain.Application, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be one of: applied, reviewed, interview, offer, rejected, withdrawn")
	}

	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Unavailable("Could not load application", err)
	}

	if actor.Role == domain.RoleBot {
		next, ok := domain.NextStatus(app.Status)
		if !ok || status != next {
			return nil, apperror.BadRequest("Bot transitions must advance exactly one step")
		}
	} else if !domain.CanTransition(app.Status, status, uc.strict) {
		return nil, apperror.BadRequest(fmt.Sprintf("Cannot transition from %s to %s", app.Status, status))
	}

	automated := actor.Role == domain.RoleBot
	previous := app.Status
	if err := uc.applicationRepo.UpdateStatus(ctx, id, status, automated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Unavailable("Could not update status", err)
	}

	entry := &domain.ActivityLogEntry{
		ApplicationID:   app.ID,
		Action:          "Status updated to " + status,
		PreviousStatus:  &previous,
		NewStatus:       status,
		Comment:         comment,
		PerformedBy:     actor.ID,
		PerformedByRole: actor.Role,
		IsAutomated:     automated,
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return nil, apperror.Unavailable("Could not record activity", err)
	}

	app.Status = status
	app.IsAutomated = automated
	return app, nil
}

// Stats returns role-scoped aggregate counts. Bot and admin additionally
// see how many ledger entries were produced by automation.
func (uc *applicationUsecase) Stats(ctx context.Context, actor *domain.User) (*domain.DashboardStats, error) {
	breakdown, err := uc.applicationRepo.CountByStatus(ctx, visibilityFor(actor))
	if err != nil {
		return nil, apperror.Unavailable("Could not compute stats", err)
	}

	stats := &domain.DashboardStats{StatusBreakdown: breakdown}
	for _, n := range breakdown {
		stats.TotalApplications += n
	}

	if actor.Role == domain.RoleBot || actor.Role == domain.RoleAdmin {
		automated, err := uc.activityRepo.CountAutomated(ctx)
		if err != nil {
			return nil, apperror.Unavailable("Could not count automated activity", err)
		}
		stats.AutomatedEntries = &automated
	}

	return stats, nil
}
