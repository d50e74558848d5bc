package util

const (
	VisitCollection = "patient_medical_history"

	VisitsKey        = "VISITS:all"
	VisitHistoryKey  = "VISITS:patient:"
	RevokedTokenKey  = "SESSION:revoked:"
	PatientIDPrefix  = "PT"
	PatientIDDigits  = 4
	MobileNumberSize = 10
)

const (
	INVALID_MOBILE_NUMBER        = "Invalid mobile number. Please enter 10 digits."
	NAME_NOT_PROVIDED            = "Please enter the patient's name."
	PATIENT_ID_NOT_PROVIDED      = "patientId is required"
	VISIT_DATE_NOT_PROVIDED      = "visitDate is required"
	VISIT_ID_NOT_PROVIDED        = "visitId is required"
	INVALID_VISIT_DATE           = "visitDate must be an RFC3339 timestamp"
	INVALID_MEDICAL_STATUS       = "medicalStatus must be one of Stable, Moderate, Critical"
	INVALID_PRESCRIPTION_DAYS    = "prescriptionDays must be between 1 and 365"
	PATIENT_NOT_FOUND            = "patient not found"
	DUPLICATE_VISIT_DATE         = "a visit is already recorded for this patient at this date"
	INVALID_CREDENTIALS          = "Invalid username or password"
	USERNAME_OR_PASSWORD_MISSING = "username and password are required"
	NOT_AUTHENTICATED            = "authentication required"
	SESSION_REVOKED              = "session has been logged out"
	ACCESS_DENIED                = "this user does not have access"
	FAILED_TO_LOAD_RECORDS       = "Error loading data"
	FAILED_TO_SAVE_RECORD        = "Error saving to database"
	FAILED_TO_DELETE_RECORD      = "Error deleting from database"
	RECORD_ALREADY_DELETED       = "Record not found or already deleted."
	UNKNOWN_ROLE                 = "role must be ADMIN or OPERATOR"
)
