package validation

import (
	"sort"
	"strconv"
)

// Grade sentinels. -1 and -2 belong to the model ("ungradable" and
// "irrelevant to job"); -3 marks a value the validator had to repair. The two
// families must never be conflated.
const (
	GradeUngradable       = -1.0
	GradeValidationFailed = -3.0
)

// ValidateGrade reports whether a scalar grade is inside the accepted domain:
// the model's own sentinels (-1, -2) or a score in [0, maxGrade].
func ValidateGrade(v, maxGrade float64) bool {
	return v >= -2 && v <= maxGrade
}

// CleanGrade returns the grade unchanged when valid and the -3 repair
// sentinel otherwise.
func CleanGrade(v, maxGrade float64) float64 {
	if !ValidateGrade(v, maxGrade) {
		return GradeValidationFailed
	}
	return v
}

// ValidateGrades reports whether every element is a valid scalar grade and,
// when totalExpected >= 0, the list has exactly that length.
func ValidateGrades(grades []float64, maxGrade float64, totalExpected int) bool {
	if totalExpected >= 0 && len(grades) != totalExpected {
		return false
	}
	for _, g := range grades {
		if !ValidateGrade(g, maxGrade) {
			return false
		}
	}
	return true
}

// CleanGrades repairs a batch grade list so the caller can always assign
// grades positionally. Invalid elements are replaced in place with -3. When
// the list is shorter than totalExpected and the raw keyed batch response is
// available, the missing batch positions ({0..totalExpected-1} minus the
// 1-indexed response keys shifted to 0-indexed) are filled with -3 using
// list-insert semantics in ascending position order; earlier insertions shift
// later target indices. That matches the legacy repair exactly and must not
// be "fixed" without changing the recorded policy.
//
// CleanGrades never fails: an unexpected internal error degrades to the
// last-resort [-1] sentinel, distinct from the -3 expected-mismatch family.
func CleanGrades(grades []float64, maxGrade float64, totalExpected int, rawBatch map[string]any) (out []float64) {
	defer func() {
		if r := recover(); r != nil {
			out = []float64{GradeUngradable}
		}
	}()

	out = make([]float64, len(grades))
	for i, g := range grades {
		out[i] = CleanGrade(g, maxGrade)
	}

	if totalExpected < 0 || len(out) == totalExpected || rawBatch == nil {
		return out
	}

	present := map[int]bool{}
	for key := range rawBatch {
		if pos, err := strconv.Atoi(key); err == nil {
			present[pos-1] = true
		}
	}

	var missing []int
	for pos := 0; pos < totalExpected; pos++ {
		if !present[pos] {
			missing = append(missing, pos)
		}
	}
	sort.Ints(missing)

	for _, pos := range missing {
		out = insertAt(out, pos, GradeValidationFailed)
	}

	return out
}

// insertAt mirrors Python list.insert: positions past the end append.
func insertAt(list []float64, pos int, v float64) []float64 {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(list) {
		return append(list, v)
	}
	list = append(list, 0)
	copy(list[pos+1:], list[pos:])
	list[pos] = v
	return list
}
