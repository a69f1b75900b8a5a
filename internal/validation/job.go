package validation

import "resumatch/api/internal/models"

// ValidateJob reports whether a raw job object already satisfies the job
// schema.
func ValidateJob(m map[string]any) bool {
	if m == nil {
		return false
	}

	for _, field := range []string{"title", "company", "description", "location"} {
		s, ok := m[field].(string)
		if !ok || s == "" {
			return false
		}
	}

	if !isStringList(m["required_skills"]) {
		return false
	}

	if _, ok := asFloat(m["salary"]); !ok {
		return false
	}

	jobType, ok := m["job_type"].(string)
	if !ok || models.ParseJobType(jobType) != models.JobType(jobType) {
		return false
	}

	if _, ok := m["active"].(bool); !ok {
		return false
	}

	deadline, ok := m["application_deadline"].(string)
	if !ok || !validDate(deadline) {
		return false
	}

	return true
}

// CleanJob repairs a raw job object into a schema-conformant one. Every
// missing or invalid field is replaced by its documented default rather than
// rejecting the whole object. CleanJob is idempotent.
func CleanJob(m map[string]any) map[string]any {
	if m == nil {
		m = map[string]any{}
	}

	out := map[string]any{}

	for _, field := range []string{"title", "company", "description", "location"} {
		s, _ := m[field].(string)
		out[field] = s
	}

	out["required_skills"] = cleanStringList(m["required_skills"])

	salary, ok := asFloat(m["salary"])
	if !ok || salary < 0 {
		salary = 0.0
	}
	out["salary"] = salary

	jobType, _ := m["job_type"].(string)
	out["job_type"] = string(models.ParseJobType(jobType))

	if active, ok := m["active"].(bool); ok {
		out["active"] = active
	} else {
		out["active"] = true
	}

	out["application_deadline"] = cleanDate(m["application_deadline"])

	return out
}

func isStringList(v any) bool {
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// cleanStringList keeps string entries and drops everything else.
func cleanStringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := []string{}
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}
