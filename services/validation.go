package services

import (
	"strings"

	"MetOptix/models"
	"MetOptix/util"
)

const (
	minPrescriptionDays     = 1
	maxPrescriptionDays     = 365
	defaultPrescriptionDays = 2
)

// ValidateMobileNumber accepts exactly ten digits once surrounding whitespace is removed.
func ValidateMobileNumber(mobile string) bool {
	mobile = strings.TrimSpace(mobile)
	return len(mobile) == util.MobileNumberSize && isDigits(mobile)
}

// validateRegistration checks the mobile number before the name, and reports the first failure only.
func validateRegistration(req *models.RegisterPatientRequest) error {
	if !ValidateMobileNumber(req.MobileNumber) {
		return ErrInvalidMobile
	}
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return ErrNameRequired
	}
	if req.MedicalStatus == "" {
		req.MedicalStatus = models.StatusStable
	}
	if req.PrescriptionDays == 0 {
		req.PrescriptionDays = defaultPrescriptionDays
	}
	return validateClinicalFields(req.MedicalStatus, req.PrescriptionDays)
}

func validateClinicalFields(status models.MedicalStatus, days int) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if days < minPrescriptionDays || days > maxPrescriptionDays {
		return ErrInvalidPrescriptionDays
	}
	return nil
}
