package db

import "time"

type Language string

const (
	LanguageUzbek   Language = "uz"
	LanguageRussian Language = "ru"
)

// InstitutionType values are the codes stored in the institution_type column.
type InstitutionType string

const (
	InstitutionSchoolKindergarten InstitutionType = "bogcha_maktab"
	InstitutionCenter             InstitutionType = "markaz"
)

type Employee struct {
	ID              int64           `db:"id"`
	SubmissionID    string          `db:"submission_id"`
	FullName        string          `db:"full_name"`
	DateOfBirth     time.Time       `db:"date_of_birth"`
	Address         string          `db:"address"`
	Email           string          `db:"email"`
	Position        string          `db:"position"`
	Subject         *string         `db:"subject"`
	StartDate       time.Time       `db:"start_date"`
	Language        Language        `db:"language"`
	SubmitterPhone  string          `db:"user_phone"`
	InstitutionType InstitutionType `db:"institution_type"`
	SelfieURL       *string         `db:"selfie_url"`
	CreatedAt       time.Time       `db:"created_at"`
}

type Student struct {
	ID              int64           `db:"id"`
	SubmissionID    string          `db:"submission_id"`
	FullName        string          `db:"full_name"`
	DateOfBirth     time.Time       `db:"date_of_birth"`
	Age             int             `db:"age"`
	Address         string          `db:"address"`
	Diagnosis       string          `db:"diagnosis"`
	AttendanceDays  string          `db:"attendance_days"`
	ParentName      string          `db:"parent_name"`
	ParentEmail     string          `db:"parent_email"`
	ParentPhone     string          `db:"parent_phone"`
	Language        Language        `db:"language"`
	SubmitterPhone  string          `db:"user_phone"`
	InstitutionType InstitutionType `db:"institution_type"`
	SelfieURL       *string         `db:"selfie_url"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Submitter is one distinct phone across both record kinds with a name taken from
// one of its records.
type Submitter struct {
	Phone       string `db:"user_phone"`
	DisplayName string `db:"full_name"`
}
