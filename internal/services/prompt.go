package services

import (
	"fmt"
	"strings"

	"resumatch/api/internal/models"
)

// ResumeEndDelimiter separates resumes inside a grading batch prompt.
const ResumeEndDelimiter = "ResumeEnd"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// ResumeExtractionInstructions describes the exact resume schema the model
// must return.
func (pb *PromptBuilder) ResumeExtractionInstructions() string {
	return `You are a resume parser. Extract structured data from the resume text supplied by the user.

Return ONLY a JSON object in exactly this format:
{
  "uid": "unassigned",
  "skills": ["<skill>", ...],
  "experience": [
    {
      "start_date": "<ddmmyyyy or 00000000 if unknown>",
      "end_date": "<ddmmyyyy or 00000000 if unknown>",
      "title": "<job title>",
      "company_name": "<company>",
      "description": "<what the candidate did>"
    }
  ],
  "education": [
    {
      "start_date": "<ddmmyyyy or 00000000 if unknown>",
      "end_date": "<ddmmyyyy or 00000000 if unknown>",
      "institution": "<school or university>",
      "course_name": "<degree or course>"
    }
  ]
}

Dates are eight digits: two digit day, two digit month, four digit year. Use "00000000" when a date is not stated. Do not invent information that is not in the text.`
}

// JobExtractionInstructions describes the exact job posting schema the model
// must return.
func (pb *PromptBuilder) JobExtractionInstructions() string {
	return `You are a job posting parser. Extract structured data from the posting text supplied by the user.

Return ONLY a JSON object in exactly this format:
{
  "title": "<job title>",
  "company": "<company name>",
  "description": "<full role description>",
  "required_skills": ["<skill>", ...],
  "application_deadline": "<ddmmyyyy or 00000000 if unknown>",
  "location": "<location>",
  "salary": <number, 0 if not stated>,
  "job_type": "<FULL, PART, CONT or UNKN>",
  "active": true
}

job_type means full time, part time, contract, or unknown. Dates are eight digits: two digit day, two digit month, four digit year. Do not invent information that is not in the text.`
}

// BatchGradingInstructions defines the grade domain and the exact response
// shape for one grading batch of the given size.
func (pb *PromptBuilder) BatchGradingInstructions(batchSize int, maxGrade float64) string {
	return fmt.Sprintf(`You are a harsh technical recruiter grading resumes against a job description.

The user message contains one job description followed by %d resume(s), separated by the "%s" delimiter.

Grade every resume on how well it fits the job:
- a score from 0 to %.0f: the resume is relevant; evaluate harshly, reserve high scores for near-perfect fits
- -1: the resume text is unreadable or too incomplete to grade
- -2: the resume is irrelevant to this job

Return ONLY a JSON object with a single "grades" key mapping each resume's position (starting at "1", in the order the resumes appear) to its grade. For example, for three resumes:
{
  "grades": {"1": 85, "2": -2, "3": 40}
}

Every position from "1" to "%d" must be present.`, batchSize, ResumeEndDelimiter, maxGrade, batchSize)
}

// BuildBatchGradingContent renders the job and the batch's resumes as the
// user content for one grading call.
func (pb *PromptBuilder) BuildBatchGradingContent(job *models.Job, resumes []models.Resume) string {
	var b strings.Builder

	b.WriteString("JOB DESCRIPTION:\n")
	b.WriteString(renderJob(job))
	b.WriteString("\n\nRESUMES:\n")

	for _, resume := range resumes {
		b.WriteString(renderResume(&resume))
		b.WriteString("\n")
		b.WriteString(ResumeEndDelimiter)
		b.WriteString("\n")
	}

	return b.String()
}

// renderJob keeps only the fields that influence fit grading. Job id, active
// flag, location, deadline, salary and job type are deliberately excluded.
func renderJob(job *models.Job) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Description: %s\n", job.Description)
	if len(job.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	}

	return b.String()
}

// renderResume excludes the uid field so user identity cannot bias the model.
func renderResume(resume *models.Resume) string {
	var b strings.Builder

	if len(resume.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(resume.Skills, ", "))
	}

	for _, exp := range resume.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s (%s - %s): %s\n",
			exp.Title, exp.CompanyName, exp.StartDate, exp.EndDate, exp.Description)
	}

	for _, edu := range resume.Education {
		fmt.Fprintf(&b, "Education: %s at %s (%s - %s)\n",
			edu.CourseName, edu.Institution, edu.StartDate, edu.EndDate)
	}

	return b.String()
}
