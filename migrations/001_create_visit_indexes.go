package migrations

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateVisitIndexes makes (PatientID, VisitDate) unique so the delete key addresses one document.
func CreateVisitIndexes(ctx context.Context, coll *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "PatientID", Value: 1}},
			Options: options.Index().SetName("patient_id"),
		},
		{
			Keys:    bson.D{{Key: "PatientID", Value: 1}, {Key: "VisitDate", Value: 1}},
			Options: options.Index().SetName("patient_visit_date").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "VisitID", Value: 1}},
			Options: options.Index().SetName("visit_id").SetUnique(true).SetSparse(true),
		},
	}
	names, err := coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Println("Migration failed (visit indexes):", err)
		return err
	}
	log.Println("Migration applied: visit indexes", names)
	return nil
}
