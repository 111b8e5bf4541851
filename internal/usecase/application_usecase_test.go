package usecase_test

import (
	"context"
	"testing"

	"go-application-tracker/internal/domain"
	"go-application-tracker/internal/usecase"
	"go-application-tracker/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	applicantActor = &domain.User{
		ID:       "11111111-1111-1111-1111-111111111111",
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     domain.RoleApplicant,
	}
	otherApplicant = &domain.User{
		ID:       "44444444-4444-4444-4444-444444444444",
		Username: "asmith",
		Email:    "asmith@example.com",
		Role:     domain.RoleApplicant,
	}
	adminActor = &domain.User{
		ID:       "22222222-2222-2222-2222-222222222222",
		Username: "admin",
		Email:    "admin@tracker.local",
		Role:     domain.RoleAdmin,
	}
)

type appFixture struct {
	appRepo      *fakeApplicationRepo
	jobRoleRepo  *fakeJobRoleRepo
	activityRepo *fakeActivityRepo
	uc           domain.ApplicationUsecase
}

func newAppFixture(t *testing.T, strict bool) *appFixture {
	t.Helper()
	f := &appFixture{
		appRepo:      newFakeApplicationRepo(),
		jobRoleRepo:  newFakeJobRoleRepo(),
		activityRepo: newFakeActivityRepo(),
	}
	f.uc = usecase.NewApplicationUsecase(f.appRepo, f.jobRoleRepo, f.activityRepo, validator.New(), strict)
	return f
}

func (f *appFixture) seedRole(roleType string) domain.JobRole {
	return f.jobRoleRepo.seed(domain.JobRole{
		Title:      "Backend Engineer",
		Type:       roleType,
		Department: "Engineering",
		IsActive:   true,
	})
}

func TestCreateApplication(t *testing.T) {
	f := newAppFixture(t, false)
	role := f.seedRole(domain.RoleTypeTechnical)

	input := &domain.Application{
		JobRoleID: role.ID,
		Resume:    "https://cdn.example.com/jdoe.pdf",
	}

	app, err := f.uc.Create(context.Background(), applicantActor, input)
	require.NoError(t, err)
	assert.NotZero(t, app.ID)
	assert.Equal(t, domain.StatusApplied, app.Status)
	assert.Equal(t, applicantActor.ID, app.ApplicantID)
	assert.False(t, app.IsAutomated)

	entries := f.activityRepo.all()
	require.Len(t, entries, 1)
	assert.Equal(t, app.ID, entries[0].ApplicationID)
	assert.Equal(t, "Application submitted", entries[0].Action)
	assert.Nil(t, entries[0].PreviousStatus)
	assert.Equal(t, domain.StatusApplied, entries[0].NewStatus)
	assert.Equal(t, applicantActor.ID, entries[0].PerformedBy)
	assert.False(t, entries[0].IsAutomated)
}

func TestCreateApplicationMissingResume(t *testing.T) {
	f := newAppFixture(t, false)
	role := f.seedRole(domain.RoleTypeTechnical)

	_, err := f.uc.Create(context.Background(), applicantActor, &domain.Application{JobRoleID: role.ID})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, f.activityRepo.all())
}

func TestCreateApplicationUnknownJobRole(t *testing.T) {
	f := newAppFixture(t, false)

	input := &domain.Application{
		JobRoleID: 99,
		Resume:    "https://cdn.example.com/jdoe.pdf",
	}

	_, err := f.uc.Create(context.Background(), applicantActor, input)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestGetApplicationVisibility(t *testing.T) {
	f := newAppFixture(t, false)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)

	// Owner sees it.
	detail, err := f.uc.Get(context.Background(), applicantActor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Application.ID)

	// Another applicant does not.
	_, err = f.uc.Get(context.Background(), otherApplicant, created.ID)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)

	// Admin always does.
	_, err = f.uc.Get(context.Background(), adminActor, created.ID)
	require.NoError(t, err)
}

func TestGetApplicationIncludesActivityTrail(t *testing.T) {
	f := newAppFixture(t, false)
	role := f.seedRole(domain.RoleTypeTechnical)

	app, err := f.uc.Create(context.Background(), applicantActor, &domain.Application{
		JobRoleID: role.ID,
		Resume:    "https://cdn.example.com/jdoe.pdf",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), adminActor, app.ID, domain.StatusReviewed, nil)
	require.NoError(t, err)

	detail, err := f.uc.Get(context.Background(), adminActor, app.ID)
	require.NoError(t, err)
	require.Len(t, detail.ActivityLog, 2)
	// Newest first.
	assert.Equal(t, domain.StatusReviewed, detail.ActivityLog[0].NewStatus)
	assert.Equal(t, "Application submitted", detail.ActivityLog[1].Action)
}

func TestListScopedByRole(t *testing.T) {
	f := newAppFixture(t, false)

	mine := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)
	theirs := seedNonTechnical(f.appRepo, otherApplicant.ID, domain.StatusReviewed)

	bot := &domain.User{ID: "33333333-3333-3333-3333-333333333333", Role: domain.RoleBot}

	own, err := f.uc.List(context.Background(), applicantActor)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	technical, err := f.uc.List(context.Background(), bot)
	require.NoError(t, err)
	require.Len(t, technical, 1)
	assert.Equal(t, mine.ID, technical[0].ID)

	all, err := f.uc.List(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = theirs
}

func TestUpdateStatusAdminLax(t *testing.T) {
	f := newAppFixture(t, false)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)

	// Lax mode lets an admin jump states.
	comment := "strong referral"
	app, err := f.uc.UpdateStatus(context.Background(), adminActor, created.ID, domain.StatusOffer, &comment)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffer, app.Status)
	assert.False(t, app.IsAutomated)

	entries := f.activityRepo.all()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].PreviousStatus)
	assert.Equal(t, domain.StatusApplied, *entries[0].PreviousStatus)
	assert.Equal(t, domain.StatusOffer, entries[0].NewStatus)
	require.NotNil(t, entries[0].Comment)
	assert.Equal(t, comment, *entries[0].Comment)
	assert.False(t, entries[0].IsAutomated)
}

func TestUpdateStatusAdminStrict(t *testing.T) {
	f := newAppFixture(t, true)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)

	// Skipping a step is rejected.
	_, err := f.uc.UpdateStatus(context.Background(), adminActor, created.ID, domain.StatusInterview, nil)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	// The adjacent step is allowed.
	app, err := f.uc.UpdateStatus(context.Background(), adminActor, created.ID, domain.StatusReviewed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewed, app.Status)

	// Rejection stays reachable from anywhere.
	app, err = f.uc.UpdateStatus(context.Background(), adminActor, created.ID, domain.StatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, app.Status)
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	f := newAppFixture(t, false)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusWithdrawn)

	_, err := f.uc.UpdateStatus(context.Background(), adminActor, created.ID, domain.StatusApplied, nil)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateStatusBotSingleStepOnly(t *testing.T) {
	f := newAppFixture(t, false)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)
	bot := &domain.User{ID: "33333333-3333-3333-3333-333333333333", Role: domain.RoleBot}

	// Two steps at once is invalid for the bot even in lax mode.
	_, err := f.uc.UpdateStatus(context.Background(), bot, created.ID, domain.StatusInterview, nil)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	app, err := f.uc.UpdateStatus(context.Background(), bot, created.ID, domain.StatusReviewed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewed, app.Status)
	assert.True(t, app.IsAutomated)

	entries := f.activityRepo.all()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsAutomated)
	assert.Equal(t, domain.RoleBot, entries[0].PerformedByRole)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	f := newAppFixture(t, false)
	created := seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)

	_, err := f.uc.UpdateStatus(context.Background(), adminActor, created.ID, "archived", nil)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestStatsBreakdown(t *testing.T) {
	f := newAppFixture(t, false)

	seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)
	seedTechnical(f.appRepo, applicantActor.ID, domain.StatusApplied)
	seedTechnical(f.appRepo, otherApplicant.ID, domain.StatusInterview)
	seedNonTechnical(f.appRepo, otherApplicant.ID, domain.StatusRejected)

	stats, err := f.uc.Stats(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalApplications)
	assert.Equal(t, 2, stats.StatusBreakdown[domain.StatusApplied])
	assert.Equal(t, 1, stats.StatusBreakdown[domain.StatusInterview])
	assert.Equal(t, 1, stats.StatusBreakdown[domain.StatusRejected])
	require.NotNil(t, stats.AutomatedEntries)
	assert.Equal(t, int64(0), *stats.AutomatedEntries)

	// Applicants only see their own slice and no automation counter.
	stats, err = f.uc.Stats(context.Background(), applicantActor)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalApplications)
	assert.Nil(t, stats.AutomatedEntries)
}
