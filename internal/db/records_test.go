package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/survey_bot/internal/config"
	"github.com/gratefultolord/survey_bot/internal/observability"
)

var dbSeq atomic.Int64

func newTestRepository(t *testing.T) *RecordRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:records_%d?mode=memory&cache=shared", dbSeq.Add(1))
	database, err := Open(config.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, RunMigrations(database.Conn, database.Driver, observability.Discard()))

	return NewRecordRepository(database.Conn)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleEmployee(subID, phone, name string) *Employee {
	return &Employee{
		SubmissionID:    subID,
		FullName:        name,
		DateOfBirth:     date("1990-05-17"),
		Address:         "Tashkent",
		Email:           "teacher@example.com",
		Position:        "O‘qituvchi, matematika",
		Subject:         pointer.ToString("O‘qituvchi, matematika"),
		StartDate:       date("2019-09-01"),
		Language:        LanguageUzbek,
		SubmitterPhone:  phone,
		InstitutionType: InstitutionSchoolKindergarten,
	}
}

func sampleStudent(subID, phone, name string) *Student {
	return &Student{
		SubmissionID:    subID,
		FullName:        name,
		DateOfBirth:     date("2015-04-01"),
		Age:             8,
		Address:         "Tashkent",
		Diagnosis:       "ASD",
		AttendanceDays:  "Mon,Wed,Fri",
		ParentName:      "Vali Aliyev",
		ParentEmail:     "vali@example.com",
		ParentPhone:     "+998907654321",
		Language:        LanguageRussian,
		SubmitterPhone:  phone,
		InstitutionType: InstitutionCenter,
	}
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	database, err := Open(config.DriverSQLite, "file:migrations_twice?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, RunMigrations(database.Conn, database.Driver, observability.Discard()))
	require.NoError(t, RunMigrations(database.Conn, database.Driver, observability.Discard()))
}

func TestRunMigrationsUnknownDriver(t *testing.T) {
	database, err := Open(config.DriverSQLite, "file:migrations_unknown?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close()

	assert.Error(t, RunMigrations(database.Conn, "oracle", observability.Discard()))
}

func TestRecordRepository_AppendAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	empID, err := repo.AppendEmployee(ctx, sampleEmployee("sub-1", "+998901112233", "Aziza Karimova"))
	require.NoError(t, err)
	assert.Positive(t, empID)

	stuID, err := repo.AppendStudent(ctx, sampleStudent("sub-2", "+998901112233", "Ali Valiyev"))
	require.NoError(t, err)
	assert.Positive(t, stuID)

	employees, students, err := repo.FindByPhone(ctx, "+998901112233")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Len(t, students, 1)

	emp := employees[0]
	assert.Equal(t, empID, emp.ID)
	assert.Equal(t, "Aziza Karimova", emp.FullName)
	assert.Equal(t, "1990-05-17", emp.DateOfBirth.Format("2006-01-02"))
	assert.Equal(t, "2019-09-01", emp.StartDate.Format("2006-01-02"))
	require.NotNil(t, emp.Subject)
	assert.Equal(t, "O‘qituvchi, matematika", *emp.Subject)
	assert.Nil(t, emp.SelfieURL)
	assert.Equal(t, LanguageUzbek, emp.Language)
	assert.Equal(t, InstitutionSchoolKindergarten, emp.InstitutionType)

	stu := students[0]
	assert.Equal(t, stuID, stu.ID)
	assert.Equal(t, 8, stu.Age)
	assert.Equal(t, "Mon,Wed,Fri", stu.AttendanceDays)
	assert.Equal(t, InstitutionCenter, stu.InstitutionType)
	assert.Equal(t, LanguageRussian, stu.Language)
}

func TestRecordRepository_AppendIsIdempotentPerSubmission(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first, err := repo.AppendStudent(ctx, sampleStudent("sub-retry", "+998901112233", "Ali Valiyev"))
	require.NoError(t, err)

	second, err := repo.AppendStudent(ctx, sampleStudent("sub-retry", "+998901112233", "Ali Valiyev"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, students, err := repo.FindByPhone(ctx, "+998901112233")
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestRecordRepository_FindByPhoneKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i, name := range []string{"First", "Second", "Third"} {
		_, err := repo.AppendEmployee(ctx, sampleEmployee(fmt.Sprintf("e-%d", i), "+998901112233", name))
		require.NoError(t, err)
	}

	employees, students, err := repo.FindByPhone(ctx, "+998901112233")
	require.NoError(t, err)
	assert.Empty(t, students)
	require.Len(t, employees, 3)
	assert.Equal(t, "First", employees[0].FullName)
	assert.Equal(t, "Second", employees[1].FullName)
	assert.Equal(t, "Third", employees[2].FullName)
}

func TestRecordRepository_FindByPhoneUnknown(t *testing.T) {
	employees, students, err := newTestRepository(t).FindByPhone(context.Background(), "+10000000000")
	require.NoError(t, err)
	assert.Empty(t, employees)
	assert.Empty(t, students)
}

func TestRecordRepository_ListDistinctSubmitters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	submitters, err := repo.ListDistinctSubmitters(ctx)
	require.NoError(t, err)
	assert.Empty(t, submitters)

	_, err = repo.AppendEmployee(ctx, sampleEmployee("a", "+998901112233", "Aziza"))
	require.NoError(t, err)
	_, err = repo.AppendStudent(ctx, sampleStudent("b", "+998901112233", "Ali"))
	require.NoError(t, err)
	_, err = repo.AppendStudent(ctx, sampleStudent("c", "+998935556677", "Bobur"))
	require.NoError(t, err)

	submitters, err = repo.ListDistinctSubmitters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Submitter{
		{Phone: "+998901112233", DisplayName: "Aziza"},
		{Phone: "+998935556677", DisplayName: "Bobur"},
	}, submitters)
}

func TestRecordRepository_ListDistinctSubmittersFollowsFirstSubmission(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	// written within the same second, phones in reverse lexical order
	_, err := repo.AppendStudent(ctx, sampleStudent("z-1", "+998990000000", "Zed"))
	require.NoError(t, err)
	_, err = repo.AppendEmployee(ctx, sampleEmployee("a-1", "+998110000000", "Amy"))
	require.NoError(t, err)
	_, err = repo.AppendEmployee(ctx, sampleEmployee("z-2", "+998990000000", "Another name"))
	require.NoError(t, err)

	// a retried append does not move or rename the submitter
	_, err = repo.AppendStudent(ctx, sampleStudent("z-1", "+998990000000", "Zed"))
	require.NoError(t, err)

	submitters, err := repo.ListDistinctSubmitters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Submitter{
		{Phone: "+998990000000", DisplayName: "Zed"},
		{Phone: "+998110000000", DisplayName: "Amy"},
	}, submitters)
}

func TestRecordRepository_ClosedDatabaseReturnsStoreError(t *testing.T) {
	database, err := Open(config.DriverSQLite, "file:closed_db?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	repo := NewRecordRepository(database.Conn)
	_, err = repo.AppendEmployee(context.Background(), sampleEmployee("x", "+998901112233", "X"))

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "RecordRepository.AppendEmployee", storeErr.Op)
}
