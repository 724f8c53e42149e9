package survey

import (
	"context"
	"strconv"
	"strings"

	"github.com/AlekSi/pointer"

	"github.com/gratefultolord/survey_bot/internal/db"
)

// RecordStore is the write side of the record store used at commit.
type RecordStore interface {
	AppendEmployee(ctx context.Context, e *db.Employee) (int64, error)
	AppendStudent(ctx context.Context, s *db.Student) (int64, error)
}

var commonKeys = []string{keyLanguage, keyUserPhone, keyInstitutionType, keySubmissionID}

var teacherMarkers = []string{"o‘qituvchi", "o'qituvchi", "преподаватель"}

func isTeacherPosition(position string) bool {
	lower := strings.ToLower(position)
	for _, marker := range teacherMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

func (f *Form) keys() []string {
	keys := append([]string{}, commonKeys...)
	for _, field := range f.Fields {
		keys = append(keys, field.Key)
	}

	return keys
}

func buildEmployee(s *Session) (*db.Employee, error) {
	if err := s.require(employeeForm.keys()...); err != nil {
		return nil, err
	}

	dob, err := s.date(keyDateOfBirth)
	if err != nil {
		return nil, err
	}

	startDate, err := s.date(keyStartDate)
	if err != nil {
		return nil, err
	}

	position := s.Fields[keyPosition]

	var subject *string
	if isTeacherPosition(position) {
		subject = pointer.ToString(position)
	}

	return &db.Employee{
		SubmissionID:    s.Fields[keySubmissionID],
		FullName:        s.Fields[keyFullName],
		DateOfBirth:     dob,
		Address:         s.Fields[keyAddress],
		Email:           s.Fields[keyEmail],
		Position:        position,
		Subject:         subject,
		StartDate:       startDate,
		Language:        db.Language(s.Fields[keyLanguage]),
		SubmitterPhone:  s.Fields[keyUserPhone],
		InstitutionType: db.InstitutionType(s.Fields[keyInstitutionType]),
	}, nil
}

func buildStudent(s *Session) (*db.Student, error) {
	if err := s.require(studentForm.keys()...); err != nil {
		return nil, err
	}

	dob, err := s.date(keyDateOfBirth)
	if err != nil {
		return nil, err
	}

	age, err := strconv.Atoi(s.Fields[keyAge])
	if err != nil {
		return nil, err
	}

	return &db.Student{
		SubmissionID:    s.Fields[keySubmissionID],
		FullName:        s.Fields[keyFullName],
		DateOfBirth:     dob,
		Age:             age,
		Address:         s.Fields[keyAddress],
		Diagnosis:       s.Fields[keyDiagnosis],
		AttendanceDays:  s.Fields[keyAttendanceDays],
		ParentName:      s.Fields[keyParentName],
		ParentEmail:     s.Fields[keyParentEmail],
		ParentPhone:     s.Fields[keyParentPhone],
		Language:        db.Language(s.Fields[keyLanguage]),
		SubmitterPhone:  s.Fields[keyUserPhone],
		InstitutionType: db.InstitutionType(s.Fields[keyInstitutionType]),
	}, nil
}
