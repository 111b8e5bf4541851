package usecase_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }

// fakeApplicationRepo is an in-memory domain.ApplicationRepository.
type fakeApplicationRepo struct {
	mu          sync.Mutex
	nextID      int64
	apps        map[int64]domain.Application
	failAdvance map[int64]error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:        make(map[int64]domain.Application),
		failAdvance: make(map[int64]error),
	}
}

// seed stores an application with a generated ID and returns it.
func (f *fakeApplicationRepo) seed(app domain.Application) domain.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	app.ID = f.nextID
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	f.apps[app.ID] = app
	return app
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	app.ID = f.nextID
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	f.apps[app.ID] = *app
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &app, nil
}

func matchesFilter(app domain.Application, filter domain.ApplicationFilter) bool {
	if filter.ApplicantID != nil && app.ApplicantID != *filter.ApplicantID {
		return false
	}
	if filter.TechnicalOnly {
		if app.JobRoleType == nil || *app.JobRoleType != domain.RoleTypeTechnical {
			return false
		}
	}
	return true
}

func (f *fakeApplicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Application
	for id := int64(1); id <= f.nextID; id++ {
		app, ok := f.apps[id]
		if ok && matchesFilter(app, filter) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) CountByStatus(ctx context.Context, filter domain.ApplicationFilter) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, app := range f.apps {
		if matchesFilter(app, filter) {
			counts[app.Status]++
		}
	}
	return counts, nil
}

var eligibleStatuses = map[string]bool{
	domain.StatusApplied:   true,
	domain.StatusReviewed:  true,
	domain.StatusInterview: true,
}

func (f *fakeApplicationRepo) FindEligible(ctx context.Context) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Application
	for id := int64(1); id <= f.nextID; id++ {
		app, ok := f.apps[id]
		if !ok || !eligibleStatuses[app.Status] {
			continue
		}
		if app.JobRoleType == nil || *app.JobRoleType != domain.RoleTypeTechnical {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string, automated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	app.Status = status
	app.IsAutomated = automated
	app.UpdatedAt = time.Now()
	f.apps[id] = app
	return nil
}

func (f *fakeApplicationRepo) AdvanceStatus(ctx context.Context, id int64, from, to string, automated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failAdvance[id]; err != nil {
		return err
	}
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	if app.Status != from {
		return domain.ErrConflict
	}
	app.Status = to
	app.IsAutomated = automated
	app.UpdatedAt = time.Now()
	f.apps[id] = app
	return nil
}

// fakeActivityRepo is an in-memory append-only ledger.
type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []domain.ActivityLogEntry
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = int64(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ActivityLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ActivityLogEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ApplicationID == applicationID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ListAutomated(ctx context.Context, limit int) ([]domain.ActivityLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ActivityLogEntry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].IsAutomated {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) CountAutomated(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.entries {
		if e.IsAutomated {
			n++
		}
	}
	return n, nil
}

// all returns a snapshot of every entry, oldest first.
func (f *fakeActivityRepo) all() []domain.ActivityLogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ActivityLogEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// fakeJobRoleRepo is an in-memory domain.JobRoleRepository.
type fakeJobRoleRepo struct {
	mu     sync.Mutex
	nextID int64
	roles  map[int64]domain.JobRole
}

func newFakeJobRoleRepo() *fakeJobRoleRepo {
	return &fakeJobRoleRepo{roles: make(map[int64]domain.JobRole)}
}

func (f *fakeJobRoleRepo) seed(role domain.JobRole) domain.JobRole {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	role.ID = f.nextID
	f.roles[role.ID] = role
	return role
}

func (f *fakeJobRoleRepo) Create(ctx context.Context, role *domain.JobRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	role.ID = f.nextID
	f.roles[role.ID] = *role
	return nil
}

func (f *fakeJobRoleRepo) GetByID(ctx context.Context, id int64) (*domain.JobRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &role, nil
}

func (f *fakeJobRoleRepo) Fetch(ctx context.Context) ([]domain.JobRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JobRole
	for id := int64(1); id <= f.nextID; id++ {
		if role, ok := f.roles[id]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (f *fakeJobRoleRepo) Update(ctx context.Context, role *domain.JobRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[role.ID]; !ok {
		return domain.ErrNotFound
	}
	f.roles[role.ID] = *role
	return nil
}

func (f *fakeJobRoleRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}
