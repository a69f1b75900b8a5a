package models

// Conversion from cleaned model-output maps into typed records. Callers must
// run the matching validation.Clean* first; these functions assume the map is
// schema-conformant and fall back to zero values on anything unexpected.

func JobFromWire(m map[string]any) *Job {
	return &Job{
		Title:               wireString(m["title"]),
		Company:             wireString(m["company"]),
		Description:         wireString(m["description"]),
		RequiredSkills:      wireStringList(m["required_skills"]),
		ApplicationDeadline: wireString(m["application_deadline"]),
		Location:            wireString(m["location"]),
		Salary:              wireFloat(m["salary"]),
		JobType:             ParseJobType(wireString(m["job_type"])),
		Active:              wireBool(m["active"]),
	}
}

func ResumeFromWire(m map[string]any) *Resume {
	resume := &Resume{
		Skills: wireStringList(m["skills"]),
	}

	for _, entry := range wireObjectList(m["experience"]) {
		resume.Experience = append(resume.Experience, ExperienceEntry{
			StartDate:   wireString(entry["start_date"]),
			EndDate:     wireString(entry["end_date"]),
			Title:       wireString(entry["title"]),
			CompanyName: wireString(entry["company_name"]),
			Description: wireString(entry["description"]),
		})
	}

	for _, entry := range wireObjectList(m["education"]) {
		resume.Education = append(resume.Education, EducationEntry{
			StartDate:   wireString(entry["start_date"]),
			EndDate:     wireString(entry["end_date"]),
			Institution: wireString(entry["institution"]),
			CourseName:  wireString(entry["course_name"]),
		})
	}

	return resume
}

func wireString(v any) string {
	s, _ := v.(string)
	return s
}

func wireBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func wireFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	default:
		return 0
	}
}

func wireStringList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return typed
		}
		return nil
	}

	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func wireObjectList(v any) []map[string]any {
	switch raw := v.(type) {
	case []map[string]any:
		return raw
	case []any:
		var out []map[string]any
		for _, item := range raw {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}
