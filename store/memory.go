package store

import (
	"context"
	"sync"
	"time"

	"MetOptix/models"
)

// MemoryVisitStore keeps visits in process memory. Used for local runs and tests.
type MemoryVisitStore struct {
	mu     sync.RWMutex
	visits []models.PatientVisit
}

func NewMemoryVisitStore(seed ...models.PatientVisit) *MemoryVisitStore {
	s := &MemoryVisitStore{}
	for _, v := range seed {
		v.VisitDate = models.NormalizeVisitDate(v.VisitDate)
		s.visits = append(s.visits, v)
	}
	return s
}

func (s *MemoryVisitStore) ListAll(ctx context.Context) ([]models.PatientVisit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PatientVisit, len(s.visits))
	copy(out, s.visits)
	return out, nil
}

func (s *MemoryVisitStore) ListByPatient(ctx context.Context, patientID string) ([]models.PatientVisit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.PatientVisit{}
	for _, v := range s.visits {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryVisitStore) ListPatientIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	ids := []string{}
	for _, v := range s.visits {
		if !seen[v.PatientID] {
			seen[v.PatientID] = true
			ids = append(ids, v.PatientID)
		}
	}
	return ids, nil
}

func (s *MemoryVisitStore) InsertOne(ctx context.Context, visit models.PatientVisit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	visit.VisitDate = models.NormalizeVisitDate(visit.VisitDate)
	s.mu.Lock()
	s.visits = append(s.visits, visit)
	s.mu.Unlock()
	return nil
}

func (s *MemoryVisitStore) DeleteOne(ctx context.Context, patientID string, visitDate time.Time) (int64, error) {
	visitDate = models.NormalizeVisitDate(visitDate)
	return s.deleteFirst(ctx, func(v models.PatientVisit) bool {
		return v.PatientID == patientID && v.VisitDate.Equal(visitDate)
	})
}

func (s *MemoryVisitStore) DeleteByVisitID(ctx context.Context, patientID, visitID string) (int64, error) {
	return s.deleteFirst(ctx, func(v models.PatientVisit) bool {
		return v.PatientID == patientID && v.VisitID == visitID
	})
}

func (s *MemoryVisitStore) deleteFirst(ctx context.Context, match func(models.PatientVisit) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.visits {
		if match(v) {
			s.visits = append(s.visits[:i:i], s.visits[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
