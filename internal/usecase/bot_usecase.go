package usecase

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/apperror"
	"go-application-tracker/pkg/logger"
)

type botUsecase struct {
	applicationRepo domain.ApplicationRepository
	activityRepo    domain.ActivityLogRepository
	probability     float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBotUsecase creates the automated status-progression engine.
// probability is the per-application chance of advancing one step on a
// batch run. rng may be seeded for deterministic tests; nil gets a
// time-seeded source.
func NewBotUsecase(
	appRepo domain.ApplicationRepository,
	activityRepo domain.ActivityLogRepository,
	probability float64,
	rng *rand.Rand,
) domain.BotUsecase {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &botUsecase{
		applicationRepo: appRepo,
		activityRepo:    activityRepo,
		probability:     probability,
		rng:             rng,
	}
}

// draw serializes access to the rand source; RunOnce and TriggerSingle
// may be invoked concurrently.
func (uc *botUsecase) draw() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.rng.Float64()
}

// RunOnce processes every eligible application independently: draw a
// uniform value and advance one step when it falls below the progression
// probability. Per-application failures are logged and skipped; the
// batch is best-effort, never all-or-nothing.
func (uc *botUsecase) RunOnce(ctx context.Context, actor *domain.User) (*domain.BatchResult, error) {
	apps, err := uc.applicationRepo.FindEligible(ctx)
	if err != nil {
		return nil, apperror.Unavailable("Could not load eligible applications", err)
	}

	result := &domain.BatchResult{Examined: len(apps), Updated: []int64{}}

	for i := range apps {
		app := &apps[i]

		if uc.draw() >= uc.probability {
			continue
		}

		next, ok := domain.NextStatus(app.Status)
		if !ok {
			// Final reachable state: nothing to advance, not an error.
			continue
		}

		if err := uc.advance(ctx, app, next, actor, nil); err != nil {
			logger.Log.Error("automated update failed",
				"application_id", app.ID,
				"error", err,
			)
			continue
		}
		result.Updated = append(result.Updated, app.ID)
	}

	logger.Log.Info("automation batch complete",
		"examined", result.Examined,
		"updated", len(result.Updated),
	)
	return result, nil
}

// TriggerSingle advances one specific application by one step without a
// probability draw. Ineligible targets fail loudly: missing application
// is NotFound, wrong role type or terminal status is Forbidden.
func (uc *botUsecase) TriggerSingle(ctx context.Context, id int64, actor *domain.User, comment *string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Unavailable("Could not load application", err)
	}

	if app.JobRoleType == nil || *app.JobRoleType != domain.RoleTypeTechnical {
		return nil, apperror.Forbidden("Only technical-role applications can be processed automatically")
	}
	if domain.IsTerminalStatus(app.Status) {
		return nil, apperror.Forbidden("Application status " + app.Status + " admits no further automated progression")
	}

	next, _ := domain.NextStatus(app.Status)
	if err := uc.advance(ctx, app, next, actor, comment); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.New(http.StatusConflict, "Application was updated concurrently, try again", err)
		}
		return nil, apperror.Unavailable("Could not update application", err)
	}

	return app, nil
}

// Activity reports the automation audit trail: recent automated entries
// plus the all-time count.
func (uc *botUsecase) Activity(ctx context.Context, limit int) ([]domain.ActivityLogEntry, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := uc.activityRepo.ListAutomated(ctx, limit)
	if err != nil {
		return nil, 0, apperror.Unavailable("Could not load automated activity", err)
	}
	total, err := uc.activityRepo.CountAutomated(ctx)
	if err != nil {
		return nil, 0, apperror.Unavailable("Could not count automated activity", err)
	}
	return entries, total, nil
}

// advance persists the one-step transition with a compare-and-swap on
// the previous status, then appends the ledger entry. The CAS keeps a
// scheduled batch and a manual trigger from silently overwriting each
// other's update.
func (uc *botUsecase) advance(ctx context.Context, app *domain.Application, next string, actor *domain.User, comment *string) error {
	previous := app.Status
	if err := uc.applicationRepo.AdvanceStatus(ctx, app.ID, previous, next, true); err != nil {
		return err
	}

	entry := &domain.ActivityLogEntry{
		ApplicationID:   app.ID,
		Action:          "Status updated to " + next,
		PreviousStatus:  &previous,
		NewStatus:       next,
		Comment:         comment,
		PerformedBy:     actor.ID,
		PerformedByRole: actor.Role,
		IsAutomated:     true,
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		return err
	}

	app.Status = next
	app.IsAutomated = true
	return nil
}
