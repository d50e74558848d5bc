package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"MetOptix/models"
	"MetOptix/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = &models.Session{Username: "admin", Role: "ADMIN"}
	clock = time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
)

type failingStore struct {
	readErr  error
	writeErr error
}

func (f failingStore) ListAll(ctx context.Context) ([]models.PatientVisit, error) {
	return nil, f.readErr
}

func (f failingStore) ListByPatient(ctx context.Context, patientID string) ([]models.PatientVisit, error) {
	return nil, f.readErr
}

func (f failingStore) ListPatientIDs(ctx context.Context) ([]string, error) {
	return nil, f.readErr
}

func (f failingStore) InsertOne(ctx context.Context, visit models.PatientVisit) error {
	return f.writeErr
}

func (f failingStore) DeleteOne(ctx context.Context, patientID string, visitDate time.Time) (int64, error) {
	return 0, f.writeErr
}

func (f failingStore) DeleteByVisitID(ctx context.Context, patientID, visitID string) (int64, error) {
	return 0, f.writeErr
}

type mapCache map[string][]byte

func (m mapCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	m[key] = data
	return err
}

func (m mapCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

func text(s string) *string {
	return &s
}

func newService(seed ...models.PatientVisit) (*VisitService, *store.MemoryVisitStore) {
	s := store.NewMemoryVisitStore(seed...)
	return NewVisitService(s).WithClock(func() time.Time { return clock }), s
}

func seedVisits() []models.PatientVisit {
	return []models.PatientVisit{
		{VisitID: "v1", PatientID: "PT0001", Name: "John Smith", MobileNumber: "9998887777", VisitDate: day, MedicalStatus: models.StatusStable, PrescriptionDays: 3, HealthIssues: "fever"},
		{VisitID: "v2", PatientID: "PT0001", Name: "John Smith", MobileNumber: "9998887777", VisitDate: day.Add(48 * time.Hour), MedicalStatus: models.StatusModerate, PrescriptionDays: 7, HealthIssues: "cough"},
		{VisitID: "v3", PatientID: "PT0002", Name: "Johnny Appleseed", MobileNumber: "1112223333", VisitDate: day.Add(time.Hour), MedicalStatus: models.StatusCritical, PrescriptionDays: 10},
	}
}

func TestOperationsRequireSession(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Search(ctx, nil, "john", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.RegisterPatient(ctx, &models.Session{}, models.RegisterPatientRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.UpdateVisit(ctx, nil, "PT0001", models.UpdateVisitRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.ListAll(ctx, nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.DeleteVisit(ctx, nil, "PT0001", day)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSearch_FoundReturnsNewestMatch(t *testing.T) {
	svc, _ := newService(seedVisits()...)

	res, err := svc.Search(context.Background(), admin, "john smith", "")
	require.NoError(t, err)
	assert.True(t, res.Found)
	require.Len(t, res.Matches, 2)
	require.NotNil(t, res.Latest)
	assert.Equal(t, "v2", res.Latest.VisitID)
	assert.Equal(t, "v2", res.Matches[0].VisitID)
	assert.Empty(t, res.NextPatientID)
}

func TestSearch_NotFoundOffersNextID(t *testing.T) {
	svc, _ := newService(seedVisits()...)

	res, err := svc.Search(context.Background(), admin, "nobody", "")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "PT0003", res.NextPatientID)
}

func TestSearch_ReadFailureFallsBackToEmpty(t *testing.T) {
	svc := NewVisitService(failingStore{readErr: errors.New("timeout")})

	res, err := svc.Search(context.Background(), admin, "john", "")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Matches)
	assert.Contains(t, res.Warning, "timeout")
	assert.Empty(t, res.NextPatientID)
}

func TestRegisterPatient(t *testing.T) {
	svc, s := newService(seedVisits()...)
	ctx := context.Background()

	v, err := svc.RegisterPatient(ctx, admin, models.RegisterPatientRequest{
		Name:          "Mary Major",
		MobileNumber:  " 5556667777 ",
		MedicalStatus: models.StatusModerate,
		HealthIssues:  "headache",
	})
	require.NoError(t, err)
	assert.Equal(t, "PT0003", v.PatientID)
	assert.Equal(t, "5556667777", v.MobileNumber)
	assert.Equal(t, 2, v.PrescriptionDays)
	assert.Equal(t, "admin", v.RecordedBy)
	assert.NotEmpty(t, v.VisitID)
	assert.True(t, v.Timestamp.Equal(clock))
	assert.True(t, v.VisitDate.Equal(models.NormalizeVisitDate(clock)))

	all, _ := s.ListAll(ctx)
	assert.Len(t, all, 4)
}

func TestRegisterPatient_EmptyStoreStartsAtOne(t *testing.T) {
	svc, _ := newService()
	v, err := svc.RegisterPatient(context.Background(), admin, models.RegisterPatientRequest{Name: "First", MobileNumber: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "PT0001", v.PatientID)
}

func TestRegisterPatient_ThenSearchByExactName(t *testing.T) {
	svc, _ := newService(seedVisits()...)
	ctx := context.Background()

	v, err := svc.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "Mary Major", MobileNumber: "5556667777"})
	require.NoError(t, err)

	res, err := svc.Search(ctx, admin, "Mary Major", "")
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	got := res.Matches[0]
	got.Timestamp = v.Timestamp
	assert.Equal(t, v, got)
}

func TestRegisterPatient_ValidationPreventsWrite(t *testing.T) {
	svc, s := newService()
	ctx := context.Background()

	_, err := svc.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "X", MobileNumber: "12345abcde"})
	assert.ErrorIs(t, err, ErrInvalidMobile)
	_, err = svc.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "", MobileNumber: "1234567890"})
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = svc.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "X", MobileNumber: "1234567890", PrescriptionDays: 400})
	assert.ErrorIs(t, err, ErrInvalidPrescriptionDays)

	all, _ := s.ListAll(ctx)
	assert.Empty(t, all)
}

func TestRegisterPatient_StoreFailures(t *testing.T) {
	req := models.RegisterPatientRequest{Name: "X", MobileNumber: "1234567890"}

	svc := NewVisitService(failingStore{readErr: errors.New("down")})
	_, err := svc.RegisterPatient(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrStoreRead)

	svc = NewVisitService(failingStore{writeErr: errors.New("rejected")})
	_, err = svc.RegisterPatient(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrStoreWrite)
}

func TestUpdateVisit_AppendsWithStoredIdentity(t *testing.T) {
	svc, s := newService(seedVisits()...)
	ctx := context.Background()
	visitDate := day.Add(72 * time.Hour)

	v, err := svc.UpdateVisit(ctx, admin, "PT0001", models.UpdateVisitRequest{
		VisitDate:        &visitDate,
		MedicalStatus:    models.StatusCritical,
		HealthIssues:     text("chest pain"),
		Prescription:     text("Aspirin"),
		PrescriptionDays: 14,
		DoctorNotes:      text(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "PT0001", v.PatientID)
	assert.Equal(t, "John Smith", v.Name)
	assert.Equal(t, "9998887777", v.MobileNumber)
	assert.True(t, v.VisitDate.Equal(visitDate))
	assert.True(t, v.Timestamp.Equal(clock))
	assert.Equal(t, 14, v.PrescriptionDays)
	assert.Equal(t, "chest pain", v.HealthIssues)
	assert.Empty(t, v.DoctorNotes)

	history, _ := s.ListByPatient(ctx, "PT0001")
	assert.Len(t, history, 3)
	assert.Equal(t, "cough", history[1].HealthIssues)
}

func TestUpdateVisit_Defaults(t *testing.T) {
	svc, _ := newService(seedVisits()...)

	v, err := svc.UpdateVisit(context.Background(), admin, "PT0001", models.UpdateVisitRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusModerate, v.MedicalStatus)
	assert.Equal(t, 7, v.PrescriptionDays)
	assert.True(t, v.VisitDate.Equal(models.NormalizeVisitDate(clock)))
}

func TestUpdateVisit_CarriesOverOmittedText(t *testing.T) {
	seed := seedVisits()
	seed[1].Prescription = "Cough syrup"
	seed[1].DoctorNotes = "review in a week"
	svc, _ := newService(seed...)

	v, err := svc.UpdateVisit(context.Background(), admin, "PT0001", models.UpdateVisitRequest{
		Prescription: text("Honey"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cough", v.HealthIssues)
	assert.Equal(t, "Honey", v.Prescription)
	assert.Equal(t, "review in a week", v.DoctorNotes)
}

func TestUpdateVisit_Errors(t *testing.T) {
	svc, _ := newService(seedVisits()...)
	ctx := context.Background()

	_, err := svc.UpdateVisit(ctx, admin, "PT0404", models.UpdateVisitRequest{})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = svc.UpdateVisit(ctx, admin, " ", models.UpdateVisitRequest{})
	assert.ErrorIs(t, err, ErrPatientIDRequired)

	_, err = svc.UpdateVisit(ctx, admin, "PT0001", models.UpdateVisitRequest{MedicalStatus: "Fine"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	existing := day.Add(48 * time.Hour)
	_, err = svc.UpdateVisit(ctx, admin, "PT0001", models.UpdateVisitRequest{VisitDate: &existing})
	assert.ErrorIs(t, err, ErrDuplicateVisit)

	svc = NewVisitService(failingStore{readErr: errors.New("down")})
	_, err = svc.UpdateVisit(ctx, admin, "PT0001", models.UpdateVisitRequest{})
	assert.ErrorIs(t, err, ErrStoreRead)
}

func TestVisitHistory(t *testing.T) {
	svc, _ := newService(seedVisits()...)
	ctx := context.Background()

	list, err := svc.VisitHistory(ctx, admin, "PT0001")
	require.NoError(t, err)
	require.Len(t, list.Visits, 2)
	assert.Equal(t, "v2", list.Visits[0].VisitID)

	_, err = svc.VisitHistory(ctx, admin, "PT0404")
	assert.ErrorIs(t, err, ErrPatientNotFound)

	svc = NewVisitService(failingStore{readErr: errors.New("down")})
	list, err = svc.VisitHistory(ctx, admin, "PT0001")
	require.NoError(t, err)
	assert.Empty(t, list.Visits)
	assert.NotEmpty(t, list.Warning)
}

func TestSummary(t *testing.T) {
	svc, _ := newService(seedVisits()...)

	text, latest, err := svc.Summary(context.Background(), admin, "PT0001")
	require.NoError(t, err)
	assert.Equal(t, "v2", latest.VisitID)
	assert.Contains(t, text, "🟠 Summary for **John Smith**")
	assert.Contains(t, text, "- **cough**")
	assert.Contains(t, text, "for **7** days")

	_, _, err = svc.Summary(context.Background(), admin, "PT0404")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestListAllAndLatestVisits(t *testing.T) {
	svc, _ := newService(seedVisits()...)
	ctx := context.Background()

	all, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all.Visits, 3)
	assert.Equal(t, "v2", all.Visits[0].VisitID)

	latest, err := svc.LatestVisits(ctx, admin)
	require.NoError(t, err)
	require.Len(t, latest.Visits, 2)
	assert.Equal(t, "v2", latest.Visits[0].VisitID)
	assert.Equal(t, "v3", latest.Visits[1].VisitID)

	svc = NewVisitService(failingStore{readErr: errors.New("down")})
	all, err = svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, all.Visits)
	assert.Contains(t, all.Warning, "down")
}

func TestDeleteVisit(t *testing.T) {
	svc, s := newService(seedVisits()...)
	ctx := context.Background()

	res, err := svc.DeleteVisit(ctx, admin, "PT0001", day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
	assert.Equal(t, "Deleted record PT0001 visit on 2025-05-10", res.Message)

	before, _ := s.ListAll(ctx)
	res, err = svc.DeleteVisit(ctx, admin, "PT0001", day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)
	after, _ := s.ListAll(ctx)
	assert.Equal(t, before, after)

	_, err = svc.DeleteVisit(ctx, admin, "", day)
	assert.ErrorIs(t, err, ErrPatientIDRequired)
	_, err = svc.DeleteVisit(ctx, admin, "PT0001", time.Time{})
	assert.ErrorIs(t, err, ErrVisitDateRequired)
}

func TestDeleteVisitByID(t *testing.T) {
	svc, _ := newService(seedVisits()...)
	ctx := context.Background()

	res, err := svc.DeleteVisitByID(ctx, admin, "PT0002", "v3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = svc.DeleteVisitByID(ctx, admin, "PT0002", "v3")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	_, err = svc.DeleteVisitByID(ctx, admin, "PT0002", "")
	assert.ErrorIs(t, err, ErrVisitIDRequired)

	svc = NewVisitService(failingStore{writeErr: errors.New("down")})
	_, err = svc.DeleteVisitByID(ctx, admin, "PT0002", "v3")
	assert.ErrorIs(t, err, ErrStoreDelete)
}

func TestRegisterPatient_SeesRegistrationsFromOtherProcesses(t *testing.T) {
	ctx := context.Background()
	shared := store.NewMemoryVisitStore()
	cached := NewVisitService(store.NewCachedVisitStore(shared, mapCache{}, time.Minute))
	direct := NewVisitService(shared)

	res, err := cached.Search(ctx, admin, "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "PT0001", res.NextPatientID)

	bob, err := direct.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "Bob", MobileNumber: "1112223333"})
	require.NoError(t, err)
	alice, err := cached.RegisterPatient(ctx, admin, models.RegisterPatientRequest{Name: "Alice", MobileNumber: "4445556666"})
	require.NoError(t, err)

	assert.Equal(t, "PT0001", bob.PatientID)
	assert.Equal(t, "PT0002", alice.PatientID)
}
