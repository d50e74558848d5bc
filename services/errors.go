package services

import (
	"errors"

	"MetOptix/util"
)

var (
	ErrInvalidMobile           = errors.New(util.INVALID_MOBILE_NUMBER)
	ErrNameRequired            = errors.New(util.NAME_NOT_PROVIDED)
	ErrPatientIDRequired       = errors.New(util.PATIENT_ID_NOT_PROVIDED)
	ErrVisitDateRequired       = errors.New(util.VISIT_DATE_NOT_PROVIDED)
	ErrVisitIDRequired         = errors.New(util.VISIT_ID_NOT_PROVIDED)
	ErrInvalidStatus           = errors.New(util.INVALID_MEDICAL_STATUS)
	ErrInvalidPrescriptionDays = errors.New(util.INVALID_PRESCRIPTION_DAYS)
	ErrPatientNotFound         = errors.New(util.PATIENT_NOT_FOUND)
	ErrDuplicateVisit          = errors.New(util.DUPLICATE_VISIT_DATE)
	ErrNotAuthenticated        = errors.New(util.NOT_AUTHENTICATED)
	ErrInvalidCredentials      = errors.New(util.INVALID_CREDENTIALS)
	ErrCredentialsMissing      = errors.New(util.USERNAME_OR_PASSWORD_MISSING)
	ErrStoreRead               = errors.New(util.FAILED_TO_LOAD_RECORDS)
	ErrStoreWrite              = errors.New(util.FAILED_TO_SAVE_RECORD)
	ErrStoreDelete             = errors.New(util.FAILED_TO_DELETE_RECORD)
	ErrUnknownRole             = errors.New(util.UNKNOWN_ROLE)
)

// IsValidationError reports whether err is an operator input problem that needs resubmission.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidMobile,
		ErrNameRequired,
		ErrPatientIDRequired,
		ErrVisitDateRequired,
		ErrVisitIDRequired,
		ErrInvalidStatus,
		ErrInvalidPrescriptionDays,
		ErrCredentialsMissing,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
