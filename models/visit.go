package models

import (
	"time"
)

type MedicalStatus string

const (
	StatusStable   MedicalStatus = "Stable"
	StatusModerate MedicalStatus = "Moderate"
	StatusCritical MedicalStatus = "Critical"
)

var MedicalStatuses = []MedicalStatus{StatusStable, StatusModerate, StatusCritical}

func (s MedicalStatus) Valid() bool {
	switch s {
	case StatusStable, StatusModerate, StatusCritical:
		return true
	}
	return false
}

// PatientVisit is one immutable visit document. Field names match the stored documents.
type PatientVisit struct {
	VisitID          string        `json:"visitId,omitempty" bson:"VisitID,omitempty"`
	PatientID        string        `json:"patientId" bson:"PatientID"`
	Name             string        `json:"name" bson:"Name"`
	MobileNumber     string        `json:"mobileNumber" bson:"MobileNumber"`
	VisitDate        time.Time     `json:"visitDate" bson:"VisitDate"`
	MedicalStatus    MedicalStatus `json:"medicalStatus" bson:"MedicalStatus"`
	HealthIssues     string        `json:"healthIssues" bson:"HealthIssues"`
	Prescription     string        `json:"prescription" bson:"Prescription"`
	PrescriptionDays int           `json:"prescriptionDays" bson:"PrescriptionDays"`
	DoctorNotes      string        `json:"doctorNotes" bson:"DoctorNotes"`
	Timestamp        time.Time     `json:"timestamp" bson:"Timestamp"`
	RecordedBy       string        `json:"recordedBy,omitempty" bson:"RecordedBy,omitempty"`
}

// Fields exposes the visit as a field-name keyed mapping, the shape the summary template reads.
func (v PatientVisit) Fields() map[string]interface{} {
	return map[string]interface{}{
		"PatientID":        v.PatientID,
		"Name":             v.Name,
		"MobileNumber":     v.MobileNumber,
		"VisitDate":        v.VisitDate,
		"MedicalStatus":    string(v.MedicalStatus),
		"HealthIssues":     v.HealthIssues,
		"Prescription":     v.Prescription,
		"PrescriptionDays": v.PrescriptionDays,
		"DoctorNotes":      v.DoctorNotes,
		"Timestamp":        v.Timestamp,
	}
}

// NormalizeVisitDate reduces t to what the document store keeps: UTC, millisecond precision.
func NormalizeVisitDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
