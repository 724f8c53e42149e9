package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/survey_bot/internal/chat"
	"github.com/gratefultolord/survey_bot/internal/db"
	"github.com/gratefultolord/survey_bot/internal/metrics"
	"github.com/gratefultolord/survey_bot/internal/observability"
	"github.com/gratefultolord/survey_bot/internal/survey"
)

const (
	adminID = int64(42)
	userID  = int64(7)
)

type failingStore struct {
	err error
}

func (f failingStore) ListDistinctSubmitters(context.Context) ([]db.Submitter, error) {
	return nil, f.err
}

func (f failingStore) FindByPhone(context.Context, string) ([]db.Employee, []db.Student, error) {
	return nil, nil, f.err
}

func day(s string) time.Time {
	t, err := time.Parse(survey.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T) *db.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemoryStore()

	_, err := store.AppendEmployee(ctx, &db.Employee{
		SubmissionID:    "e1",
		FullName:        "Aziza Karimova",
		DateOfBirth:     day("1990-05-17"),
		Address:         "Toshkent",
		Email:           "aziza@example.com",
		Position:        "Matematika o‘qituvchisi",
		Subject:         pointer.ToString("Matematika o‘qituvchisi"),
		StartDate:       day("2019-09-01"),
		Language:        db.LanguageUzbek,
		SubmitterPhone:  "+998901112233",
		InstitutionType: db.InstitutionSchoolKindergarten,
	})
	require.NoError(t, err)

	_, err = store.AppendStudent(ctx, &db.Student{
		SubmissionID:    "s1",
		FullName:        "Ali Valiyev",
		DateOfBirth:     day("2015-04-01"),
		Age:             8,
		Address:         "Toshkent",
		Diagnosis:       "ASD",
		AttendanceDays:  "Mon,Wed,Fri",
		ParentName:      "Vali Aliyev",
		ParentEmail:     "vali@example.com",
		ParentPhone:     "+998907654321",
		Language:        db.LanguageUzbek,
		SubmitterPhone:  "+998901112233",
		InstitutionType: db.InstitutionCenter,
	})
	require.NoError(t, err)

	_, err = store.AppendStudent(ctx, &db.Student{
		SubmissionID:    "s2",
		FullName:        "Bobur Aliyev",
		DateOfBirth:     day("2016-01-10"),
		Age:             7,
		Address:         "Samarqand",
		Diagnosis:       "ADHD",
		AttendanceDays:  "Tue",
		ParentName:      "Nodira",
		ParentEmail:     "nodira@example.com",
		ParentPhone:     "+998901234567",
		Language:        db.LanguageRussian,
		SubmitterPhone:  "+998935556677",
		InstitutionType: db.InstitutionCenter,
	})
	require.NoError(t, err)

	return store
}

func TestMenu(t *testing.T) {
	svc := New(db.NewMemoryStore(), adminID, nil, observability.Discard())

	resp, err := svc.Menu(adminID)
	require.NoError(t, err)
	choice, ok := resp.(chat.ChoiceMessage)
	require.True(t, ok)
	assert.Equal(t, []string{ButtonResponses}, choice.Choices)

	resp, err = svc.Menu(userID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, msgNoRights, resp.Message())
}

func TestListSubmitters(t *testing.T) {
	collector := metrics.New()
	svc := New(seed(t), adminID, collector, observability.Discard())

	resp, err := svc.ListSubmitters(context.Background(), adminID)
	require.NoError(t, err)

	menu, ok := resp.(chat.MenuMessage)
	require.True(t, ok)
	assert.Equal(t, msgChooseUser, menu.Text)
	assert.Equal(t, []chat.MenuItem{
		{Label: "Aziza Karimova (+998901112233)", Action: "user_+998901112233"},
		{Label: "Bobur Aliyev (+998935556677)", Action: "user_+998935556677"},
	}, menu.Items)
}

func TestListSubmittersEmpty(t *testing.T) {
	svc := New(db.NewMemoryStore(), adminID, nil, observability.Discard())

	resp, err := svc.ListSubmitters(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, msgNoResponses, resp.Message())
}

func TestShowSubmitter(t *testing.T) {
	svc := New(seed(t), adminID, nil, observability.Discard())

	resp, err := svc.ShowSubmitter(context.Background(), adminID, "+998901112233")
	require.NoError(t, err)

	menu, ok := resp.(chat.MenuMessage)
	require.True(t, ok)
	assert.Equal(t, []chat.MenuItem{{Label: labelBack, Action: ActionShowResponses}}, menu.Items)

	text := menu.Text
	assert.True(t, strings.HasPrefix(text, "Foydalanuvchi: +998901112233\n\n"))
	assert.Contains(t, text, "  Muassasa turi: Bog‘cha / Maktab\n")
	assert.Contains(t, text, "  Muassasa turi: Markaz\n")
	assert.Contains(t, text, "  Tug‘ilgan sana: 1990-05-17\n")
	assert.Contains(t, text, "  Ish boshlagan sana: 2019-09-01\n")
	assert.Contains(t, text, "  Yoshi: 8\n")
	assert.Contains(t, text, "  Ota-ona telefoni: +998907654321")
	assert.NotContains(t, text, "Bobur Aliyev")

	// employees are rendered before students
	assert.Less(t, strings.Index(text, "Xodimlar / Сотрудники:"), strings.Index(text, "Tarbiyalanuvchilar / Воспитанники:"))
}

func TestShowSubmitterNotFound(t *testing.T) {
	svc := New(seed(t), adminID, nil, observability.Discard())

	resp, err := svc.ShowSubmitter(context.Background(), adminID, "+000000000000")
	require.NoError(t, err)
	assert.Equal(t, msgUserNotFound, resp.Message())
}

func TestNonAdminIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := New(seed(t), adminID, nil, observability.Discard())

	resp, err := svc.ListSubmitters(ctx, userID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, survey.ErrUnauthorized)
	assert.Equal(t, msgNoRights, resp.Message())

	resp, err = svc.ShowSubmitter(ctx, userID, "+998901112233")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, msgNoRights, resp.Message())

	resp, err = svc.HandleCallback(ctx, userID, ActionShowResponses)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.IsType(t, chat.AlertMessage{}, resp)
}

func TestHandleCallback(t *testing.T) {
	ctx := context.Background()
	svc := New(seed(t), adminID, nil, observability.Discard())

	resp, err := svc.HandleCallback(ctx, adminID, ActionShowResponses)
	require.NoError(t, err)
	assert.Equal(t, msgChooseUser, resp.Message())

	resp, err = svc.HandleCallback(ctx, adminID, "user_+998935556677")
	require.NoError(t, err)
	assert.Contains(t, resp.Message(), "Bobur Aliyev")

	resp, err = svc.HandleCallback(ctx, adminID, "delete_all")
	assert.ErrorIs(t, err, survey.ErrProtocol)
	assert.IsType(t, chat.AlertMessage{}, resp)
}

func TestStoreFailure(t *testing.T) {
	ctx := context.Background()
	collector := metrics.New()
	storeErr := &db.StoreError{Op: "RecordRepository.ListDistinctSubmitters", Err: errors.New("connection refused")}
	svc := New(failingStore{err: storeErr}, adminID, collector, observability.Discard())

	resp, err := svc.ListSubmitters(ctx, adminID)
	var target *db.StoreError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, msgQueryFailed, resp.Message())

	resp, err = svc.ShowSubmitter(ctx, adminID, "+998901112233")
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, msgQueryFailed, resp.Message())

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `surveybot_admin_queries_total{op="list_submitters",result="error"} 1`)
	assert.Contains(t, rec.Body.String(), `surveybot_admin_queries_total{op="show_submitter",result="error"} 1`)
}

func TestRenderOmitsEmptySections(t *testing.T) {
	text := Render("+998935556677", nil, []db.Student{{FullName: "Bobur", InstitutionType: db.InstitutionCenter}})

	assert.NotContains(t, text, "Xodimlar")
	assert.Contains(t, text, "Tarbiyalanuvchilar / Воспитанники:\n- Ism: Bobur\n")
	assert.False(t, strings.HasSuffix(text, "\n"))
}
