package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

// AppendEmployee inserts the record and returns its id. A second append with the same
// SubmissionID returns the existing row's id instead of inserting again.
func (r *RecordRepository) AppendEmployee(ctx context.Context, e *Employee) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, storeErr("RecordRepository.AppendEmployee", err)
	}
	defer tx.Rollback()

	var id int64

	err = tx.GetContext(ctx, &id, tx.Rebind(`
	    INSERT INTO employees
		(submission_id, full_name, date_of_birth, address, email, position, subject,
		start_date, language, user_phone, institution_type, selfie_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (submission_id) DO UPDATE SET submission_id = excluded.submission_id
		RETURNING id
	`),
		e.SubmissionID,
		e.FullName,
		e.DateOfBirth,
		e.Address,
		e.Email,
		e.Position,
		e.Subject,
		e.StartDate,
		e.Language,
		e.SubmitterPhone,
		e.InstitutionType,
		e.SelfieURL,
	)
	if err != nil {
		return 0, storeErr("RecordRepository.AppendEmployee", err)
	}

	if err := registerSubmitter(ctx, tx, e.SubmitterPhone, e.FullName); err != nil {
		return 0, storeErr("RecordRepository.AppendEmployee", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("RecordRepository.AppendEmployee", err)
	}

	return id, nil
}

// AppendStudent has the same idempotency rule as AppendEmployee.
func (r *RecordRepository) AppendStudent(ctx context.Context, s *Student) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, storeErr("RecordRepository.AppendStudent", err)
	}
	defer tx.Rollback()

	var id int64

	err = tx.GetContext(ctx, &id, tx.Rebind(`
	    INSERT INTO students
		(submission_id, full_name, date_of_birth, age, address, diagnosis, attendance_days,
		parent_name, parent_email, parent_phone, language, user_phone, institution_type, selfie_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (submission_id) DO UPDATE SET submission_id = excluded.submission_id
		RETURNING id
	`),
		s.SubmissionID,
		s.FullName,
		s.DateOfBirth,
		s.Age,
		s.Address,
		s.Diagnosis,
		s.AttendanceDays,
		s.ParentName,
		s.ParentEmail,
		s.ParentPhone,
		s.Language,
		s.SubmitterPhone,
		s.InstitutionType,
		s.SelfieURL,
	)
	if err != nil {
		return 0, storeErr("RecordRepository.AppendStudent", err)
	}

	if err := registerSubmitter(ctx, tx, s.SubmitterPhone, s.FullName); err != nil {
		return 0, storeErr("RecordRepository.AppendStudent", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("RecordRepository.AppendStudent", err)
	}

	return id, nil
}

// registerSubmitter records the phone on its first submission only, keeping the name
// given then. The submitters id sequence is the listing order.
func registerSubmitter(ctx context.Context, tx *sqlx.Tx, phone, name string) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO submitters (user_phone, full_name)
		VALUES (?, ?)
		ON CONFLICT (user_phone) DO NOTHING
	`), phone, name)

	return err
}

// ListDistinctSubmitters returns one entry per phone across both record kinds,
// ordered by first submission.
func (r *RecordRepository) ListDistinctSubmitters(ctx context.Context) ([]Submitter, error) {
	var submitters []Submitter

	err := r.db.SelectContext(ctx, &submitters, `
	    SELECT user_phone, full_name
		FROM submitters
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, storeErr("RecordRepository.ListDistinctSubmitters", err)
	}

	return submitters, nil
}

// FindByPhone returns both record kinds for the phone in insertion order.
func (r *RecordRepository) FindByPhone(ctx context.Context, phone string) ([]Employee, []Student, error) {
	var employees []Employee

	err := r.db.SelectContext(ctx, &employees, r.db.Rebind(`
	    SELECT * FROM employees
		WHERE user_phone = ?
		ORDER BY id ASC
	`), phone)
	if err != nil {
		return nil, nil, storeErr("RecordRepository.FindByPhone", err)
	}

	var students []Student

	err = r.db.SelectContext(ctx, &students, r.db.Rebind(`
	    SELECT * FROM students
		WHERE user_phone = ?
		ORDER BY id ASC
	`), phone)
	if err != nil {
		return nil, nil, storeErr("RecordRepository.FindByPhone", err)
	}

	return employees, students, nil
}
