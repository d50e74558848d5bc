package store

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"MetOptix/models"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoVisitStore struct {
	coll *mongo.Collection
}

func NewMongoVisitStore(coll *mongo.Collection) *MongoVisitStore {
	return &MongoVisitStore{coll: coll}
}

func (s *MongoVisitStore) ListAll(ctx context.Context) ([]models.PatientVisit, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoVisitStore) ListByPatient(ctx context.Context, patientID string) ([]models.PatientVisit, error) {
	return s.find(ctx, bson.M{"PatientID": patientID})
}

/*
* Decode one document at a time
* A document that cannot be read even leniently is logged and skipped
* Only a failing query or cursor fails the whole read
 */
func (s *MongoVisitStore) find(ctx context.Context, filter bson.M) ([]models.PatientVisit, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		log.Println("Error from find on visits:", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	visits := []models.PatientVisit{}
	for cursor.Next(ctx) {
		visit, err := decodeVisit(cursor.Current)
		if err != nil {
			log.Println("Skipping unreadable visit document:", err)
			continue
		}
		visits = append(visits, visit)
	}
	if err := cursor.Err(); err != nil {
		log.Println("Error from cursor on visits:", err)
		return nil, err
	}
	return visits, nil
}

func (s *MongoVisitStore) ListPatientIDs(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "PatientID", bson.M{})
	if err != nil {
		log.Println("Error from distinct on visits:", err)
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case string:
			ids = append(ids, id)
		case nil:
		default:
			ids = append(ids, fmt.Sprint(id))
		}
	}
	return ids, nil
}

func (s *MongoVisitStore) InsertOne(ctx context.Context, visit models.PatientVisit) error {
	visit.VisitDate = models.NormalizeVisitDate(visit.VisitDate)
	inserted, err := db.CreateOne(ctx, s.coll, visit)
	if err != nil {
		return err
	}
	log.Println("Inserted visit document:", inserted.InsertedID)
	return nil
}

func (s *MongoVisitStore) DeleteOne(ctx context.Context, patientID string, visitDate time.Time) (int64, error) {
	filter := bson.M{
		"PatientID": patientID,
		"VisitDate": models.NormalizeVisitDate(visitDate),
	}
	return s.delete(ctx, filter)
}

func (s *MongoVisitStore) DeleteByVisitID(ctx context.Context, patientID, visitID string) (int64, error) {
	filter := bson.M{
		"PatientID": patientID,
		"VisitID":   visitID,
	}
	return s.delete(ctx, filter)
}

func (s *MongoVisitStore) delete(ctx context.Context, filter bson.M) (int64, error) {
	deleted, err := db.DeleteOne(ctx, s.coll, filter)
	if err != nil {
		return 0, err
	}
	log.Println("Deleted: ", deleted.DeletedCount)
	return deleted.DeletedCount, nil
}

// legacyVisit reads documents whose fields were stored with looser types,
// such as a numeric MobileNumber or a fractional PrescriptionDays.
type legacyVisit struct {
	VisitID          string        `bson:"VisitID"`
	PatientID        string        `bson:"PatientID"`
	Name             string        `bson:"Name"`
	MobileNumber     bson.RawValue `bson:"MobileNumber"`
	VisitDate        bson.RawValue `bson:"VisitDate"`
	MedicalStatus    string        `bson:"MedicalStatus"`
	HealthIssues     string        `bson:"HealthIssues"`
	Prescription     string        `bson:"Prescription"`
	PrescriptionDays bson.RawValue `bson:"PrescriptionDays"`
	DoctorNotes      string        `bson:"DoctorNotes"`
	Timestamp        bson.RawValue `bson:"Timestamp"`
	RecordedBy       string        `bson:"RecordedBy"`
}

func decodeVisit(raw bson.Raw) (models.PatientVisit, error) {
	var visit models.PatientVisit
	if err := bson.Unmarshal(raw, &visit); err == nil {
		return visit, nil
	}
	var legacy legacyVisit
	if err := bson.Unmarshal(raw, &legacy); err != nil {
		return models.PatientVisit{}, err
	}
	return models.PatientVisit{
		VisitID:          legacy.VisitID,
		PatientID:        legacy.PatientID,
		Name:             legacy.Name,
		MobileNumber:     rawString(legacy.MobileNumber),
		VisitDate:        rawTime(legacy.VisitDate),
		MedicalStatus:    models.MedicalStatus(legacy.MedicalStatus),
		HealthIssues:     legacy.HealthIssues,
		Prescription:     legacy.Prescription,
		PrescriptionDays: rawInt(legacy.PrescriptionDays),
		DoctorNotes:      legacy.DoctorNotes,
		Timestamp:        rawTime(legacy.Timestamp),
		RecordedBy:       legacy.RecordedBy,
	}, nil
}

func rawString(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	}
	return ""
}

func rawInt(v bson.RawValue) int {
	switch v.Type {
	case bson.TypeInt32:
		return int(v.Int32())
	case bson.TypeInt64:
		return int(v.Int64())
	case bson.TypeDouble:
		return int(v.Double())
	case bson.TypeString:
		n, _ := strconv.Atoi(v.StringValue())
		return n
	}
	return 0
}

// rawTime reads a datetime or a date string. Anything else is the zero time.
func rawTime(v bson.RawValue) time.Time {
	switch v.Type {
	case bson.TypeDateTime:
		return v.Time().UTC()
	case bson.TypeString:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, v.StringValue()); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
