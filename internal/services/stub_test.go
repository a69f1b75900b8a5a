package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
)

// stubGemini scripts the model gateway for workflow tests.
type stubGemini struct {
	generateObject func(system, user string) (map[string]any, error)
	embedding      []float32
}

func (s *stubGemini) GenerateText(ctx context.Context, system, user string) (string, error) {
	return "", nil
}

func (s *stubGemini) GenerateObject(ctx context.Context, system, user string) (map[string]any, error) {
	if s.generateObject == nil {
		return nil, ErrModelOutputMalformed
	}
	return s.generateObject(system, user)
}

func (s *stubGemini) GenerateInt(ctx context.Context, system, user string, min, max int) (int, error) {
	return -1, nil
}

func (s *stubGemini) GenerateFloat(ctx context.Context, system, user string, min, max float64) (float64, error) {
	return -1, nil
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.embedding, nil
}

type allowAll struct{}

func (allowAll) Authorize(actorID uuid.UUID, capability Capability) error { return nil }

type denyAll struct{}

func (denyAll) Authorize(actorID uuid.UUID, capability Capability) error { return ErrForbidden }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]*models.Job{}}
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*models.Resume
	created []*models.Resume
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: map[uuid.UUID]*models.Resume{}}
}

func (r *fakeResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes[resume.ID] = resume
	r.created = append(r.created, resume)
	return nil
}

func (r *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *resume
	return &cp, nil
}

func (r *fakeResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, id := range ids {
		if resume, ok := r.resumes[id]; ok {
			out = append(out, *resume)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) FindUnindexed(limit int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, resume := range r.resumes {
		if !resume.Indexed && len(out) < limit {
			out = append(out, *resume)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) MarkIndexed(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	resume.Indexed = true
	return nil
}

func (r *fakeResumeRepo) ResetIndexed() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resume := range r.resumes {
		resume.Indexed = false
	}
	return nil
}

// fakeQdrant records upserts and answers searches from a canned hit list.
type fakeQdrant struct {
	mu       sync.Mutex
	upserted map[uuid.UUID][]string
	hits     []ResumeHit
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{upserted: map[uuid.UUID][]string{}}
}

func (q *fakeQdrant) InitCollection(ctx context.Context) error { return nil }

func (q *fakeQdrant) UpsertResumeChunk(ctx context.Context, resumeID uuid.UUID, text string, embedding []float32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.upserted[resumeID] = append(q.upserted[resumeID], text)
	return nil
}

func (q *fakeQdrant) SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error) {
	if len(q.hits) > limit {
		return q.hits[:limit], nil
	}
	return q.hits, nil
}

func (q *fakeQdrant) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.upserted, resumeID)
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches []models.Match
}

func (r *fakeMatchRepo) Create(match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	r.matches = append(r.matches, *match)
	return nil
}

func (r *fakeMatchRepo) FindByID(id uuid.UUID) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == id {
			m := r.matches[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMatchRepo) FindByJob(jobID uuid.UUID) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for _, m := range r.matches {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) FindGradable(jobID uuid.UUID) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for _, m := range r.matches {
		if m.JobID == jobID && m.StatusCode == models.StatusCodeMatched {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateGrade(id uuid.UUID, grade float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches[i].Grade = grade
			r.matches[i].Status = models.StatusLabels[models.StatusCodeGraded]
			r.matches[i].StatusCode = models.StatusCodeGraded
			return nil
		}
	}
	return repositories.ErrNotFound
}

// gradeOf returns the persisted grade for a match id.
func (r *fakeMatchRepo) gradeOf(id uuid.UUID) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			return m.Grade, m.StatusCode == models.StatusCodeGraded
		}
	}
	return 0, false
}
