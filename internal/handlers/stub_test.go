package handlers

import (
	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
)

type memJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func newMemJobRepo() *memJobRepo { return &memJobRepo{jobs: map[uuid.UUID]*models.Job{}} }

func (r *memJobRepo) Create(job *models.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *memJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	if job, ok := r.jobs[id]; ok {
		return job, nil
	}
	return nil, repositories.ErrNotFound
}

type memResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{resumes: map[uuid.UUID]*models.Resume{}}
}

func (r *memResumeRepo) Create(resume *models.Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *memResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	if resume, ok := r.resumes[id]; ok {
		return resume, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range ids {
		if resume, ok := r.resumes[id]; ok {
			out = append(out, *resume)
		}
	}
	return out, nil
}

func (r *memResumeRepo) FindUnindexed(limit int) ([]models.Resume, error) { return nil, nil }

func (r *memResumeRepo) MarkIndexed(id uuid.UUID) error { return nil }

func (r *memResumeRepo) ResetIndexed() error { return nil }

type memMatchRepo struct {
	matches []models.Match
}

func (r *memMatchRepo) Create(match *models.Match) error {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	r.matches = append(r.matches, *match)
	return nil
}

func (r *memMatchRepo) FindByID(id uuid.UUID) (*models.Match, error) {
	for i := range r.matches {
		if r.matches[i].ID == id {
			m := r.matches[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memMatchRepo) FindByJob(jobID uuid.UUID) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) FindGradable(jobID uuid.UUID) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.JobID == jobID && m.StatusCode == models.StatusCodeMatched {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) UpdateGrade(id uuid.UUID, grade float64) error {
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

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[uuid.UUID]*models.User{}} }

func (r *memUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

type memFeedbackRepo struct {
	feedback []models.Feedback
}

func (r *memFeedbackRepo) Create(feedback *models.Feedback) error {
	r.feedback = append(r.feedback, *feedback)
	return nil
}

func (r *memFeedbackRepo) FindByMatch(matchID uuid.UUID) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, f := range r.feedback {
		if f.MatchID == matchID {
			out = append(out, f)
		}
	}
	return out, nil
}
