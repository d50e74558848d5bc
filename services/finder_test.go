package services

import (
	"testing"
	"time"

	"MetOptix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func finderRecords() []models.PatientVisit {
	return []models.PatientVisit{
		{PatientID: "PT0001", Name: "John Smith", MobileNumber: "9998887777", VisitDate: day},
		{PatientID: "PT0002", Name: "Johnny Appleseed", MobileNumber: "1112223333", VisitDate: day.Add(time.Hour)},
	}
}

func TestFindPatients_ByName(t *testing.T) {
	got := FindPatients(finderRecords(), "john", "")
	assert.Len(t, got, 2)

	got = FindPatients(finderRecords(), "APPLE", "")
	require.Len(t, got, 1)
	assert.Equal(t, "PT0002", got[0].PatientID)
}

func TestFindPatients_ByMobile(t *testing.T) {
	got := FindPatients(finderRecords(), "", "999")
	require.Len(t, got, 1)
	assert.Equal(t, "PT0001", got[0].PatientID)
}

func TestFindPatients_BothFiltersAreConjunctive(t *testing.T) {
	assert.Len(t, FindPatients(finderRecords(), "john", "111"), 1)
	assert.Empty(t, FindPatients(finderRecords(), "smith", "111"))
}

func TestFindPatients_NoInput(t *testing.T) {
	got := FindPatients(finderRecords(), "", "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindPatients_MatchesInputAsTyped(t *testing.T) {
	assert.Len(t, FindPatients(finderRecords(), " ", ""), 2)
	assert.Empty(t, FindPatients(finderRecords(), "", " 999"))
	assert.Empty(t, FindPatients(finderRecords(), "john ", "111"))
}

func TestLatestVisit(t *testing.T) {
	_, ok := LatestVisit(nil)
	assert.False(t, ok)

	records := []models.PatientVisit{
		{VisitID: "a", VisitDate: day},
		{VisitID: "b", VisitDate: day.Add(2 * time.Hour)},
		{VisitID: "c", VisitDate: day.Add(time.Hour)},
	}
	latest, ok := LatestVisit(records)
	require.True(t, ok)
	assert.Equal(t, "b", latest.VisitID)
}

func TestLatestVisit_TieBreaks(t *testing.T) {
	byTimestamp := []models.PatientVisit{
		{VisitID: "later-write", VisitDate: day, Timestamp: day.Add(time.Minute)},
		{VisitID: "earlier-write", VisitDate: day, Timestamp: day},
	}
	latest, _ := LatestVisit(byTimestamp)
	assert.Equal(t, "later-write", latest.VisitID)

	byPosition := []models.PatientVisit{
		{VisitID: "first", VisitDate: day, Timestamp: day},
		{VisitID: "second", VisitDate: day, Timestamp: day},
	}
	latest, _ = LatestVisit(byPosition)
	assert.Equal(t, "second", latest.VisitID)
}

func TestSortNewestFirst_AgreesWithLatestVisit(t *testing.T) {
	records := []models.PatientVisit{
		{VisitID: "first", VisitDate: day, Timestamp: day},
		{VisitID: "old", VisitDate: day.Add(-time.Hour)},
		{VisitID: "second", VisitDate: day, Timestamp: day},
	}
	sorted := SortNewestFirst(records)
	latest, _ := LatestVisit(records)

	require.Len(t, sorted, 3)
	assert.Equal(t, latest.VisitID, sorted[0].VisitID)
	assert.Equal(t, []string{"second", "first", "old"}, []string{sorted[0].VisitID, sorted[1].VisitID, sorted[2].VisitID})
	assert.Equal(t, "first", records[0].VisitID)

	assert.NotNil(t, SortNewestFirst(nil))
}

func TestLatestVisitPerPatient(t *testing.T) {
	records := []models.PatientVisit{
		{PatientID: "PT0002", VisitID: "2a", VisitDate: day},
		{PatientID: "PT0001", VisitID: "1a", VisitDate: day.Add(time.Hour)},
		{PatientID: "PT0001", VisitID: "1b", VisitDate: day},
		{PatientID: "PT0002", VisitID: "2b", VisitDate: day.Add(3 * time.Hour)},
	}
	got := LatestVisitPerPatient(records)
	require.Len(t, got, 2)
	assert.Equal(t, "1a", got[0].VisitID)
	assert.Equal(t, "2b", got[1].VisitID)

	assert.Empty(t, LatestVisitPerPatient(nil))
}
