package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type mockBlobRepo struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites bool
	failReads  bool
}

func newMockBlobRepo() *mockBlobRepo {
	return &mockBlobRepo{data: map[string][]byte{}}
}

func (m *mockBlobRepo) Save(_ context.Context, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("disk full")
	}
	m.data[id] = data
	return nil
}

func (m *mockBlobRepo) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, errors.New("storage disabled")
	}
	return m.data[id], nil
}

func (m *mockBlobRepo) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func newTestStore(itemsPerPage int) (*Store, EventBus.Bus, *mockBlobRepo) {
	bus := EventBus.New()
	repo := newMockBlobRepo()
	return New(bus, NewPersistence(repo), itemsPerPage), bus, repo
}

func testJob(id, title string) models.Job {
	now := time.Now().UTC()
	return models.Job{
		ID:               id,
		Title:            title,
		Company:          "Acme",
		Location:         "Berlin",
		JobCategory:      "Engineering",
		EmploymentType:   "Full-time",
		NumberOfOpenings: 1,
		Qualifications:   []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
		Source:           models.SourceAPI,
	}
}

func Test_Store_ApplyForJob_EndToEnd(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)

	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	app, err := s.ApplyForJob("j1", models.ApplicantDetails{Name: "Ann", Email: "a@x.com"})
	assert.NoError(err)
	assert.Equal(models.StatusPending, app.Status)
	assert.Equal("j1", app.JobID)
	assert.Equal("Backend Engineer", app.JobTitle)
	assert.Equal("Acme", app.Company)

	_, err = s.ApplyForJob("j1", models.ApplicantDetails{Name: "Bob", Email: "b@x.com"})
	assert.ErrorIs(err, ErrDuplicateApplication)

	assert.Len(s.GetApplications(), 1)
	assert.True(s.HasApplied("j1"))
}

func Test_Store_ApplyForJob_UnknownJob(t *testing.T) {

	s, _, _ := newTestStore(9)

	_, err := s.ApplyForJob("missing", models.ApplicantDetails{Name: "Ann", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.Empty(t, s.GetApplications())
}

func Test_Store_ApplyForJob_InvalidApplicant(t *testing.T) {

	s, _, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	_, err := s.ApplyForJob("j1", models.ApplicantDetails{Name: "Ann", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidApplicant)

	_, err = s.ApplyForJob("j1", models.ApplicantDetails{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrInvalidApplicant)

	assert.Empty(t, s.GetApplications())
}

func Test_Store_ApplicationSnapshotDoesNotTrackJobEdits(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	_, err := s.ApplyForJob("j1", models.ApplicantDetails{Name: "Ann", Email: "a@x.com"})
	assert.NoError(err)

	newTitle := "Staff Engineer"
	s.UpdateJob("j1", models.JobPatch{Title: &newTitle})

	apps := s.GetApplicationsForJob("j1")
	assert.Len(apps, 1)
	assert.Equal("Backend Engineer", apps[0].JobTitle)
}

func Test_Store_SaveJob_IsIdempotent(t *testing.T) {

	assert := assert.New(t)
	s, bus, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	savedEvents := 0
	unsubscribe, err := events.Subscribe(bus, events.JobSavedTopic, func(string) { savedEvents++ })
	assert.NoError(err)
	defer unsubscribe()

	s.SaveJob("j1")
	s.SaveJob("j1")

	assert.True(s.IsJobSaved("j1"))
	assert.Equal(1, savedEvents)
}

func Test_Store_UnsaveJob_NotifiesOnlyOnChange(t *testing.T) {

	assert := assert.New(t)
	s, bus, _ := newTestStore(9)

	unsavedEvents := 0
	unsubscribe, err := events.Subscribe(bus, events.JobUnsavedTopic, func(string) { unsavedEvents++ })
	assert.NoError(err)
	defer unsubscribe()

	s.UnsaveJob("j1")
	assert.Equal(0, unsavedEvents)

	s.SaveJob("j1")
	s.UnsaveJob("j1")
	assert.False(s.IsJobSaved("j1"))
	assert.Equal(1, unsavedEvents)
}

func Test_Store_GetSavedJobs_MostRecentFirst(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "First"), testJob("j2", "Second"), testJob("j3", "Third")})

	s.SaveJob("j1")
	s.SaveJob("j2")
	s.SaveJob("gone")

	saved := s.GetSavedJobs()
	assert.Len(saved, 2)
	assert.Equal("j2", saved[0].ID)
	assert.Equal("j1", saved[1].ID)
}

func Test_Store_AddJob_AssignsIdentity(t *testing.T) {

	assert := assert.New(t)
	s, _, repo := newTestStore(9)

	job := s.AddJob(models.JobDraft{Title: "Recruiter Posted", Company: "Acme"})

	assert.NotEmpty(job.ID)
	assert.Equal(models.SourceUser, job.Source)
	assert.False(job.CreatedAt.IsZero())
	assert.Equal(1, job.NumberOfOpenings)
	assert.NotNil(job.Qualifications)

	assert.Len(s.GetUserJobs(), 1)
	assert.Len(s.GetAllJobs(), 1)
	assert.Contains(repo.data, keyUserJobs)
}

func Test_Store_UpdateJob_MergesPatch(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)

	job := s.AddJob(models.JobDraft{Title: "Old Title", Company: "Acme"})

	newTitle := "New Title"
	salary := 70000
	s.UpdateJob(job.ID, models.JobPatch{Title: &newTitle, SalaryFrom: &salary})

	updated, found := s.GetJobByID(job.ID)
	assert.True(found)
	assert.Equal("New Title", updated.Title)
	assert.Equal("Acme", updated.Company)
	assert.Equal(70000, *updated.SalaryFrom)
	assert.False(updated.UpdatedAt.Before(job.UpdatedAt))

	userJobs := s.GetUserJobs()
	assert.Equal("New Title", userJobs[0].Title)
	assert.Equal(updated.UpdatedAt, userJobs[0].UpdatedAt)
}

func Test_Store_UpdateJob_UnknownIDIsNoOp(t *testing.T) {

	assert := assert.New(t)
	s, bus, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	updateEvents := 0
	unsubscribe, err := events.Subscribe(bus, events.JobUpdatedTopic, func(models.Job) { updateEvents++ })
	assert.NoError(err)
	defer unsubscribe()

	title := "Changed"
	s.UpdateJob("missing", models.JobPatch{Title: &title})

	assert.Equal(0, updateEvents)
	job, _ := s.GetJobByID("j1")
	assert.Equal("Backend Engineer", job.Title)
}

func Test_Store_DeleteJob_RemovesFromBothCollections(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)

	job := s.AddJob(models.JobDraft{Title: "Recruiter Posted", Company: "Acme"})
	s.DeleteJob(job.ID)

	_, found := s.GetJobByID(job.ID)
	assert.False(found)
	assert.Empty(s.GetUserJobs())

	s.DeleteJob("missing") // absent id stays a no-op
}

func Test_Store_UpdateApplicationStatus(t *testing.T) {

	assert := assert.New(t)
	s, bus, _ := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})

	var updated *models.Application
	unsubscribe, err := events.Subscribe(bus, events.ApplicationUpdatedTopic, func(app models.Application) { updated = &app })
	assert.NoError(err)
	defer unsubscribe()

	app, err := s.ApplyForJob("j1", models.ApplicantDetails{Name: "Ann", Email: "a@x.com"})
	assert.NoError(err)

	s.UpdateApplicationStatus(app.ID, models.StatusInterviewing)
	assert.NotNil(updated)
	assert.Equal(models.StatusInterviewing, updated.Status)
	assert.Equal(models.StatusInterviewing, s.GetApplications()[0].Status)

	updated = nil
	s.UpdateApplicationStatus("missing", models.StatusHired)
	assert.Nil(updated)
}

func Test_Store_SetRole(t *testing.T) {

	assert := assert.New(t)
	s, bus, repo := newTestStore(9)

	var received models.Role
	unsubscribe, err := events.Subscribe(bus, events.RoleChangedTopic, func(role models.Role) { received = role })
	assert.NoError(err)
	defer unsubscribe()

	assert.ErrorIs(s.SetRole("admin"), ErrInvalidRole)

	assert.NoError(s.SetRole(models.RoleRecruiter))
	assert.Equal(models.RoleRecruiter, s.GetRole())
	assert.Equal(models.RoleRecruiter, received)
	assert.Contains(repo.data, keyUserRole)
}

func Test_Store_RestoresDurableState(t *testing.T) {

	assert := assert.New(t)
	bus := EventBus.New()
	repo := newMockBlobRepo()
	repo.data[keyUserRole] = []byte(`"seeker"`)
	repo.data[keyTheme] = []byte(`"dark"`)
	repo.data[keySavedJobs] = []byte(`["j1","j2"]`)
	repo.data[keyApplications] = []byte(`[{"id":"app_1","jobId":"j1","jobTitle":"Old","company":"Acme","name":"Ann","email":"a@x.com","appliedAt":"2025-01-01T00:00:00Z","status":"pending"}]`)
	repo.data[keyFilters] = []byte(`{"search":"go","sort":"oldest","remoteOnly":true,"category":"","location":""}`)

	s := New(bus, NewPersistence(repo), 9)

	assert.Equal(models.RoleSeeker, s.GetRole())
	assert.Equal("dark", s.GetTheme())
	assert.True(s.HasApplied("j1"))
	assert.Equal(models.SortOldest, s.GetFilters().Sort)
	assert.True(s.GetFilters().RemoteOnly)
}

func Test_Store_CorruptEntryFallsBackWithoutAffectingOthers(t *testing.T) {

	assert := assert.New(t)
	bus := EventBus.New()
	repo := newMockBlobRepo()
	repo.data[keyFilters] = []byte(`{not valid json`)
	repo.data[keyTheme] = []byte(`"dark"`)

	s := New(bus, NewPersistence(repo), 9)

	assert.Equal(models.DefaultFilters(), s.GetFilters())
	assert.Equal("dark", s.GetTheme())
}

func Test_Store_WrongTypedEntryDoesNotLeakPartialState(t *testing.T) {

	assert := assert.New(t)
	bus := EventBus.New()
	repo := newMockBlobRepo()
	repo.data[keyFilters] = []byte(`{"search":"leaked","sort":42}`)

	s := New(bus, NewPersistence(repo), 9)

	assert.Equal(models.DefaultFilters(), s.GetFilters())
}

func Test_Store_PersistenceFailureKeepsInMemoryState(t *testing.T) {

	assert := assert.New(t)
	s, _, repo := newTestStore(9)
	s.SetAllJobs([]models.Job{testJob("j1", "Backend Engineer")})
	repo.failWrites = true

	s.SaveJob("j1")
	assert.True(s.IsJobSaved("j1"))

	_, err := s.ApplyForJob("j1", models.ApplicantDetails{Name: "Ann", Email: "a@x.com"})
	assert.NoError(err)
	assert.Len(s.GetApplications(), 1)
}

func Test_Store_RemoveExpiredListings(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	expired := testJob("j1", "Expired")
	expired.ApplicationDeadline = &past
	open := testJob("j2", "Open")
	open.ApplicationDeadline = &future
	noDeadline := testJob("j3", "No Deadline")

	s.SetAllJobs([]models.Job{expired, open, noDeadline})
	userJob := s.AddJob(models.JobDraft{Title: "Mine", Company: "Acme", ApplicationDeadline: &past})

	assert.Equal(1, s.RemoveExpiredListings(time.Now()))

	_, found := s.GetJobByID("j1")
	assert.False(found)
	_, found = s.GetJobByID("j2")
	assert.True(found)
	_, found = s.GetJobByID(userJob.ID)
	assert.True(found)

	assert.Equal(0, s.RemoveExpiredListings(time.Now()))
}

func Test_Store_SetAllJobs_KeepsUserJobsBrowsable(t *testing.T) {

	assert := assert.New(t)
	s, _, _ := newTestStore(9)

	s.AddJob(models.JobDraft{Title: "Mine", Company: "Acme"})
	s.SetAllJobs([]models.Job{testJob("j1", "Fetched")})

	assert.Len(s.GetAllJobs(), 2)
	assert.Len(s.GetUserJobs(), 1)
}
