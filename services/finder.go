package services

import (
	"slices"
	"sort"
	"strings"

	"MetOptix/models"
)

/*
* Name matches case-insensitively as a substring
* Mobile number matches as a plain substring
* Inputs are matched as typed, whitespace included
* When both are given a record must match both
* With neither given there is nothing to search for
 */
func FindPatients(records []models.PatientVisit, name, mobile string) []models.PatientVisit {
	name = strings.ToLower(name)
	matches := []models.PatientVisit{}
	if name == "" && mobile == "" {
		return matches
	}
	for _, r := range records {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if mobile != "" && !strings.Contains(r.MobileNumber, mobile) {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

// compareVisits orders by VisitDate, then Timestamp. Callers break the remaining ties by position.
func compareVisits(a, b models.PatientVisit) int {
	if c := a.VisitDate.Compare(b.VisitDate); c != 0 {
		return c
	}
	return a.Timestamp.Compare(b.Timestamp)
}

// LatestVisit picks the current state: greatest VisitDate, then greatest Timestamp,
// then the record that comes last in records.
func LatestVisit(records []models.PatientVisit) (models.PatientVisit, bool) {
	if len(records) == 0 {
		return models.PatientVisit{}, false
	}
	latest := records[0]
	for _, r := range records[1:] {
		if compareVisits(r, latest) >= 0 {
			latest = r
		}
	}
	return latest, true
}

// SortNewestFirst returns a copy ordered so that element 0 is what LatestVisit would pick.
func SortNewestFirst(records []models.PatientVisit) []models.PatientVisit {
	out := slices.Clone(records)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.PatientVisit) int {
		return compareVisits(b, a)
	})
	if out == nil {
		out = []models.PatientVisit{}
	}
	return out
}

// LatestVisitPerPatient is the current-state view: one visit per PatientID, ordered by PatientID.
func LatestVisitPerPatient(records []models.PatientVisit) []models.PatientVisit {
	grouped := map[string][]models.PatientVisit{}
	for _, r := range records {
		grouped[r.PatientID] = append(grouped[r.PatientID], r)
	}
	out := make([]models.PatientVisit, 0, len(grouped))
	for _, visits := range grouped {
		latest, _ := LatestVisit(visits)
		out = append(out, latest)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PatientID < out[j].PatientID
	})
	return out
}
