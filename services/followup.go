package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"MetOptix/models"
)

// PrescriptionEndDate is the calendar day the current prescription runs out, in loc.
func PrescriptionEndDate(v models.PatientVisit, loc *time.Location) time.Time {
	start := v.VisitDate.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, v.PrescriptionDays)
}

/*
* Take each patient's current visit only
* Keep those whose prescription end day equals day, in day's location
 */
func (s *VisitService) PrescriptionsEndingOn(ctx context.Context, day time.Time) ([]models.PatientVisit, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		log.Println("Error loading visits for follow-ups:", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	loc := day.Location()
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	due := []models.PatientVisit{}
	for _, v := range LatestVisitPerPatient(records) {
		if v.PrescriptionDays <= 0 {
			continue
		}
		if PrescriptionEndDate(v, loc).Equal(target) {
			due = append(due, v)
		}
	}
	return due, nil
}

func (s *VisitService) FollowUps(ctx context.Context, sess *models.Session, day time.Time) (models.VisitList, error) {
	if err := requireSession(sess); err != nil {
		return models.VisitList{}, err
	}
	due, err := s.PrescriptionsEndingOn(ctx, day)
	if err != nil {
		return models.VisitList{}, err
	}
	return models.VisitList{Visits: due}, nil
}
