package models

import "time"

type RegisterPatientRequest struct {
	Name             string        `json:"name"`
	MobileNumber     string        `json:"mobileNumber"`
	MedicalStatus    MedicalStatus `json:"medicalStatus"`
	HealthIssues     string        `json:"healthIssues"`
	Prescription     string        `json:"prescription"`
	PrescriptionDays int           `json:"prescriptionDays"`
	DoctorNotes      string        `json:"doctorNotes"`
}

// UpdateVisitRequest carries only the operator-editable fields, identity comes from the stored patient.
// A nil text field keeps the current visit's value, an empty string clears it.
type UpdateVisitRequest struct {
	VisitDate        *time.Time    `json:"visitDate"`
	MedicalStatus    MedicalStatus `json:"medicalStatus"`
	HealthIssues     *string       `json:"healthIssues"`
	Prescription     *string       `json:"prescription"`
	PrescriptionDays int           `json:"prescriptionDays"`
	DoctorNotes      *string       `json:"doctorNotes"`
}

type SearchResult struct {
	Matches       []PatientVisit `json:"matches"`
	Latest        *PatientVisit  `json:"latest,omitempty"`
	Found         bool           `json:"found"`
	NextPatientID string         `json:"nextPatientId,omitempty"`
	Warning       string         `json:"warning,omitempty"`
}

type VisitList struct {
	Visits  []PatientVisit `json:"visits"`
	Warning string         `json:"warning,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64  `json:"deletedCount"`
	Message      string `json:"message"`
}
