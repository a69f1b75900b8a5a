package validation

// experience entry text fields default to a single space, matching the
// legacy repair policy.
const blankField = " "

// ValidateResume reports whether a raw resume object already satisfies the
// resume schema.
func ValidateResume(m map[string]any) bool {
	if m == nil {
		return false
	}

	if !isStringList(m["skills"]) {
		return false
	}

	if !validEntryList(m["experience"], []string{"title", "company_name", "description"}) {
		return false
	}

	return validEntryList(m["education"], []string{"institution", "course_name"})
}

// CleanResume repairs a raw resume object into a schema-conformant one:
// non-string skills are dropped, non-object experience/education entries are
// dropped, and inside each entry text fields default to a single space and
// dates to the zero sentinel.
func CleanResume(m map[string]any) map[string]any {
	if m == nil {
		m = map[string]any{}
	}

	return map[string]any{
		"skills":     cleanStringList(m["skills"]),
		"experience": cleanEntryList(m["experience"], []string{"title", "company_name", "description"}),
		"education":  cleanEntryList(m["education"], []string{"institution", "course_name"}),
	}
}

func validEntryList(v any, textFields []string) bool {
	list, ok := asObjectList(v)
	if !ok {
		return false
	}

	for _, entry := range list {
		for _, field := range textFields {
			if _, ok := entry[field].(string); !ok {
				return false
			}
		}
		for _, field := range []string{"start_date", "end_date"} {
			date, ok := entry[field].(string)
			if !ok || !validDate(date) {
				return false
			}
		}
	}

	return true
}

func cleanEntryList(v any, textFields []string) []map[string]any {
	out := []map[string]any{}

	list, ok := asObjectList(v)
	if !ok {
		return out
	}

	for _, entry := range list {
		cleaned := map[string]any{}
		for _, field := range textFields {
			s, ok := entry[field].(string)
			if !ok || s == "" {
				s = blankField
			}
			cleaned[field] = s
		}
		cleaned["start_date"] = cleanDate(entry["start_date"])
		cleaned["end_date"] = cleanDate(entry["end_date"])
		out = append(out, cleaned)
	}

	return out
}

// asObjectList accepts both raw-decoded ([]any) and already-cleaned
// ([]map[string]any) entry lists; non-object entries are dropped.
func asObjectList(v any) ([]map[string]any, bool) {
	switch list := v.(type) {
	case []map[string]any:
		return list, true
	case []any:
		out := []map[string]any{}
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
