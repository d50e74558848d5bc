// Package store holds the Record Store Adapter: list, insert and delete against the visit collection.
package store

import (
	"context"
	"time"

	"MetOptix/models"
)

type VisitStore interface {
	ListAll(ctx context.Context) ([]models.PatientVisit, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.PatientVisit, error)
	// ListPatientIDs reads the distinct PatientIDs from the backing store, never from a cache.
	ListPatientIDs(ctx context.Context) ([]string, error)
	InsertOne(ctx context.Context, visit models.PatientVisit) error
	// DeleteOne removes at most one document matching both fields; 0 means already gone.
	DeleteOne(ctx context.Context, patientID string, visitDate time.Time) (int64, error)
	DeleteByVisitID(ctx context.Context, patientID, visitID string) (int64, error)
}
