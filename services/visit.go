package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"MetOptix/models"
	"MetOptix/store"
	"MetOptix/util"

	"github.com/google/uuid"
)

// VisitService is the Record Mutator and read side over a VisitStore.
// Every operation re-reads the store; nothing is kept between calls.
type VisitService struct {
	store store.VisitStore
	now   func() time.Time
	newID func() string
}

func NewVisitService(s store.VisitStore) *VisitService {
	return &VisitService{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the time source used for Timestamp and default visit dates.
func (s *VisitService) WithClock(now func() time.Time) *VisitService {
	s.now = now
	return s
}

func requireSession(sess *models.Session) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func readWarning(err error) string {
	return fmt.Sprintf("%s: %v", util.FAILED_TO_LOAD_RECORDS, err)
}

/*
* Load every visit, on a read failure log it and search an empty set
* Filter by name and mobile, newest first
* If something matched, the newest match is the patient
* If nothing matched, offer the id a registration would get
 */
func (s *VisitService) Search(ctx context.Context, sess *models.Session, name, mobile string) (models.SearchResult, error) {
	if err := requireSession(sess); err != nil {
		return models.SearchResult{}, err
	}
	result := models.SearchResult{}
	records, err := s.store.ListAll(ctx)
	if err != nil {
		log.Println("Warning: failed loading visits for search:", err)
		result.Warning = readWarning(err)
		records = nil
	}
	result.Matches = SortNewestFirst(FindPatients(records, name, mobile))
	if len(result.Matches) > 0 {
		latest := result.Matches[0]
		result.Latest = &latest
		result.Found = true
		return result, nil
	}
	if err == nil {
		result.NextPatientID = NextPatientID(patientIDs(records))
	}
	return result, nil
}

func patientIDs(records []models.PatientVisit) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.PatientID)
	}
	return ids
}

/*
* Validate the mobile number first, then the name
* Allocate the next patient id from the store itself, never from a cache
* Visit date is the registration time
* Insert exactly one document
 */
func (s *VisitService) RegisterPatient(ctx context.Context, sess *models.Session, req models.RegisterPatientRequest) (models.PatientVisit, error) {
	if err := requireSession(sess); err != nil {
		return models.PatientVisit{}, err
	}
	if err := validateRegistration(&req); err != nil {
		log.Println("Error from validateRegistration:", err)
		return models.PatientVisit{}, err
	}
	ids, err := s.store.ListPatientIDs(ctx)
	if err != nil {
		log.Println("Error loading patient ids for allocation:", err)
		return models.PatientVisit{}, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	now := s.now()
	visit := models.PatientVisit{
		VisitID:          s.newID(),
		PatientID:        NextPatientID(ids),
		Name:             req.Name,
		MobileNumber:     req.MobileNumber,
		VisitDate:        models.NormalizeVisitDate(now),
		MedicalStatus:    req.MedicalStatus,
		HealthIssues:     req.HealthIssues,
		Prescription:     req.Prescription,
		PrescriptionDays: req.PrescriptionDays,
		DoctorNotes:      req.DoctorNotes,
		Timestamp:        now,
		RecordedBy:       sess.Username,
	}
	if err := s.store.InsertOne(ctx, visit); err != nil {
		log.Println("Error saving new patient:", err)
		return models.PatientVisit{}, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	log.Printf("Registered %s with ID %s by %s", visit.Name, visit.PatientID, sess.Username)
	return visit, nil
}

/*
* Identity fields come from the patient's current visit, never from the request
* Missing visit date means now, every other missing field carries over
* A second visit at the same date for the same patient is rejected
* Insert exactly one new document, nothing is updated in place
 */
func (s *VisitService) UpdateVisit(ctx context.Context, sess *models.Session, patientID string, req models.UpdateVisitRequest) (models.PatientVisit, error) {
	if err := requireSession(sess); err != nil {
		return models.PatientVisit{}, err
	}
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return models.PatientVisit{}, ErrPatientIDRequired
	}
	history, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		log.Println("Error loading patient history:", err)
		return models.PatientVisit{}, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	latest, ok := LatestVisit(history)
	if !ok {
		return models.PatientVisit{}, ErrPatientNotFound
	}

	status := req.MedicalStatus
	if status == "" {
		status = latest.MedicalStatus
	}
	days := req.PrescriptionDays
	if days == 0 {
		days = latest.PrescriptionDays
	}
	if err := validateClinicalFields(status, days); err != nil {
		return models.PatientVisit{}, err
	}

	now := s.now()
	visitDate := now
	if req.VisitDate != nil && !req.VisitDate.IsZero() {
		visitDate = *req.VisitDate
	}
	visitDate = models.NormalizeVisitDate(visitDate)
	for _, h := range history {
		if h.VisitDate.Equal(visitDate) {
			return models.PatientVisit{}, ErrDuplicateVisit
		}
	}

	visit := models.PatientVisit{
		VisitID:          s.newID(),
		PatientID:        latest.PatientID,
		Name:             latest.Name,
		MobileNumber:     latest.MobileNumber,
		VisitDate:        visitDate,
		MedicalStatus:    status,
		HealthIssues:     orCurrent(req.HealthIssues, latest.HealthIssues),
		Prescription:     orCurrent(req.Prescription, latest.Prescription),
		PrescriptionDays: days,
		DoctorNotes:      orCurrent(req.DoctorNotes, latest.DoctorNotes),
		Timestamp:        now,
		RecordedBy:       sess.Username,
	}
	if err := s.store.InsertOne(ctx, visit); err != nil {
		log.Println("Error saving visit update:", err)
		return models.PatientVisit{}, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	log.Printf("Patient visit updated: %s at %s by %s", visit.PatientID, visit.VisitDate.Format(time.RFC3339), sess.Username)
	return visit, nil
}

func orCurrent(edited *string, current string) string {
	if edited == nil {
		return current
	}
	return *edited
}

// VisitHistory lists one patient's visits, newest first.
func (s *VisitService) VisitHistory(ctx context.Context, sess *models.Session, patientID string) (models.VisitList, error) {
	if err := requireSession(sess); err != nil {
		return models.VisitList{}, err
	}
	if strings.TrimSpace(patientID) == "" {
		return models.VisitList{}, ErrPatientIDRequired
	}
	list := models.VisitList{}
	history, err := s.store.ListByPatient(ctx, strings.TrimSpace(patientID))
	if err != nil {
		log.Println("Warning: failed loading visit history:", err)
		list.Warning = readWarning(err)
		history = nil
	}
	list.Visits = SortNewestFirst(history)
	if len(list.Visits) == 0 && err == nil {
		return list, ErrPatientNotFound
	}
	return list, nil
}

// Summary renders the summary of the patient's current visit.
func (s *VisitService) Summary(ctx context.Context, sess *models.Session, patientID string) (string, models.PatientVisit, error) {
	if err := requireSession(sess); err != nil {
		return "", models.PatientVisit{}, err
	}
	history, err := s.store.ListByPatient(ctx, strings.TrimSpace(patientID))
	if err != nil {
		log.Println("Error loading patient for summary:", err)
		return "", models.PatientVisit{}, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	latest, ok := LatestVisit(history)
	if !ok {
		return "", models.PatientVisit{}, ErrPatientNotFound
	}
	return GenerateSummary(SummaryFields(latest)), latest, nil
}

// ListAll is the full table, newest first. A read failure yields an empty table and a warning.
func (s *VisitService) ListAll(ctx context.Context, sess *models.Session) (models.VisitList, error) {
	if err := requireSession(sess); err != nil {
		return models.VisitList{}, err
	}
	list := models.VisitList{}
	records, err := s.store.ListAll(ctx)
	if err != nil {
		log.Println("Warning: failed loading visits:", err)
		list.Warning = readWarning(err)
		records = nil
	}
	list.Visits = SortNewestFirst(records)
	return list, nil
}

// LatestVisits is the current-state view, one visit per patient.
func (s *VisitService) LatestVisits(ctx context.Context, sess *models.Session) (models.VisitList, error) {
	if err := requireSession(sess); err != nil {
		return models.VisitList{}, err
	}
	list := models.VisitList{}
	records, err := s.store.ListAll(ctx)
	if err != nil {
		log.Println("Warning: failed loading visits:", err)
		list.Warning = readWarning(err)
		records = nil
	}
	list.Visits = LatestVisitPerPatient(records)
	return list, nil
}

func (s *VisitService) DeleteVisit(ctx context.Context, sess *models.Session, patientID string, visitDate time.Time) (models.DeleteResult, error) {
	if err := requireSession(sess); err != nil {
		return models.DeleteResult{}, err
	}
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return models.DeleteResult{}, ErrPatientIDRequired
	}
	if visitDate.IsZero() {
		return models.DeleteResult{}, ErrVisitDateRequired
	}
	deleted, err := s.store.DeleteOne(ctx, patientID, visitDate)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %v", ErrStoreDelete, err)
	}
	return deleteResult(sess, patientID, "on "+visitDate.UTC().Format("2006-01-02"), deleted), nil
}

func (s *VisitService) DeleteVisitByID(ctx context.Context, sess *models.Session, patientID, visitID string) (models.DeleteResult, error) {
	if err := requireSession(sess); err != nil {
		return models.DeleteResult{}, err
	}
	patientID = strings.TrimSpace(patientID)
	visitID = strings.TrimSpace(visitID)
	if patientID == "" {
		return models.DeleteResult{}, ErrPatientIDRequired
	}
	if visitID == "" {
		return models.DeleteResult{}, ErrVisitIDRequired
	}
	deleted, err := s.store.DeleteByVisitID(ctx, patientID, visitID)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %v", ErrStoreDelete, err)
	}
	return deleteResult(sess, patientID, visitID, deleted), nil
}

func deleteResult(sess *models.Session, patientID, visit string, deleted int64) models.DeleteResult {
	if deleted == 0 {
		log.Printf("Delete by %s found nothing for %s %s", sess.Username, patientID, visit)
		return models.DeleteResult{DeletedCount: 0, Message: util.RECORD_ALREADY_DELETED}
	}
	log.Printf("Deleted record %s visit %s by %s", patientID, visit, sess.Username)
	return models.DeleteResult{
		DeletedCount: deleted,
		Message:      fmt.Sprintf("Deleted record %s visit %s", patientID, visit),
	}
}
