package store

import (
	"context"
	"log"
	"time"

	"MetOptix/config/redis"
	"MetOptix/models"
	"MetOptix/util"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache adapts the shared redis helpers to Cache.
type RedisCache struct{}

func (RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return redis.GetCache(ctx, key, dest)
}

func (RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return redis.SetCache(ctx, key, value, ttl)
}

func (RedisCache) Delete(ctx context.Context, keys ...string) error {
	return redis.DeleteCache(ctx, keys...)
}

// CachedVisitStore is a read-through cache over another VisitStore.
// Entries are the whole collection and each patient's history. Every successful
// write through this store drops the whole-collection entry and the written
// patient's entry; writes made by other processes are visible after ttl at most.
type CachedVisitStore struct {
	inner VisitStore
	cache Cache
	ttl   time.Duration
}

func NewCachedVisitStore(inner VisitStore, cache Cache, ttl time.Duration) *CachedVisitStore {
	return &CachedVisitStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedVisitStore) ListAll(ctx context.Context) ([]models.PatientVisit, error) {
	return s.readThrough(ctx, util.VisitsKey, func() ([]models.PatientVisit, error) {
		return s.inner.ListAll(ctx)
	})
}

func (s *CachedVisitStore) ListByPatient(ctx context.Context, patientID string) ([]models.PatientVisit, error) {
	return s.readThrough(ctx, util.VisitHistoryKey+patientID, func() ([]models.PatientVisit, error) {
		return s.inner.ListByPatient(ctx, patientID)
	})
}

// ListPatientIDs bypasses the cache. Id allocation must see writes from other processes.
func (s *CachedVisitStore) ListPatientIDs(ctx context.Context) ([]string, error) {
	return s.inner.ListPatientIDs(ctx)
}

func (s *CachedVisitStore) readThrough(ctx context.Context, key string, load func() ([]models.PatientVisit, error)) ([]models.PatientVisit, error) {
	var cached []models.PatientVisit
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Println("Error from getCache:", key, err)
	}
	if found {
		return cached, nil
	}
	visits, err := load()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, visits, s.ttl); err != nil {
		log.Println("Error from setCache:", key, err)
	}
	return visits, nil
}

func (s *CachedVisitStore) InsertOne(ctx context.Context, visit models.PatientVisit) error {
	if err := s.inner.InsertOne(ctx, visit); err != nil {
		return err
	}
	s.invalidate(ctx, visit.PatientID)
	return nil
}

func (s *CachedVisitStore) DeleteOne(ctx context.Context, patientID string, visitDate time.Time) (int64, error) {
	n, err := s.inner.DeleteOne(ctx, patientID, visitDate)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, patientID)
	return n, nil
}

func (s *CachedVisitStore) DeleteByVisitID(ctx context.Context, patientID, visitID string) (int64, error) {
	n, err := s.inner.DeleteByVisitID(ctx, patientID, visitID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, patientID)
	return n, nil
}

func (s *CachedVisitStore) invalidate(ctx context.Context, patientID string) {
	if err := s.cache.Delete(ctx, util.VisitsKey, util.VisitHistoryKey+patientID); err != nil {
		log.Println("Failed deleting visit cache:", patientID, err)
	}
}
