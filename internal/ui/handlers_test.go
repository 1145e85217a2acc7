package ui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-admin/internal/domain"
	"mini-admin/internal/i18n"
	"mini-admin/internal/mockapi"
	"mini-admin/internal/querycache"
	"mini-admin/internal/restclient"
	"mini-admin/internal/service/assignment"
	"mini-admin/internal/service/dashboard"
	"mini-admin/internal/service/employee"
	"mini-admin/internal/service/training"
	"mini-admin/internal/settings"
)

const testCSRFToken = "test-token"

type testEnv struct {
	router   http.Handler
	store    *mockapi.Store
	settings *settings.Store
	handler  *Handler
}

func testDocument() map[string]any {
	return map[string]any{
		"employees": []domain.Employee{
			{ID: 1, Name: "Ann Lee", Email: "ann@example.com", Role: domain.RoleEngineer, Status: domain.StatusActive, CreatedAt: "2025-01-10"},
			{ID: 2, Name: "Bob Stone", Email: "bob@example.com", Role: domain.RoleManager, Status: domain.StatusActive, CreatedAt: "2025-02-11"},
			{ID: 3, Name: "Joanna Hart", Email: "jo@example.com", Role: domain.RoleEngineer, Status: domain.StatusInactive, CreatedAt: "2025-03-12"},
			{ID: 4, Name: "Carl Diaz", Email: "carl@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive, CreatedAt: "2025-04-13"},
			{ID: 6, Name: "Dana Ives", Email: "dana@example.com", Role: domain.RoleEngineer, Status: domain.StatusActive, CreatedAt: "2025-05-14"},
		},
		"trainings": []domain.Training{
			{ID: 101, Title: "TypeScript 101", StartDate: "2025-09-20", EndDate: "2025-09-20", Active: true},
			{ID: 102, Title: "React Advanced", StartDate: "2025-09-25", EndDate: "2025-09-25", Active: false},
		},
		"assignments": []domain.Assignment{
			{ID: 1001, EmployeeID: 1, TrainingID: 101, AssignedAt: "2025-09-01"},
			{ID: 1002, EmployeeID: 99, TrainingID: 102, AssignedAt: "2025-09-02"},
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := mockapi.NewMemoryStore(testDocument())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := httptest.NewServer(mockapi.NewRouter(store, mockapi.Options{Logger: logger}))
	t.Cleanup(api.Close)

	env := newEnvForBaseURL(t, api.URL, logger)
	env.store = store
	return env
}

func newEnvForBaseURL(t *testing.T, baseURL string, logger *slog.Logger) *testEnv {
	t.Helper()
	client := restclient.New(restclient.Options{BaseURL: baseURL, Timeout: 2 * time.Second, Logger: logger})
	cache := querycache.New(time.Minute)
	employees := employee.NewService(client.Employees(), cache, logger)
	trainings := training.NewService(client.Trainings(), cache)
	assignments := assignment.NewService(client.Assignments(), employees, trainings, cache, logger)
	store := settings.NewStore(settings.Settings{})

	h := NewHandler(employees, trainings, assignments,
		dashboard.NewService(employees, trainings, assignments),
		store, logger, false, false)

	r := chi.NewRouter()
	r.Route("/ui", func(r chi.Router) { MountRoutes(r, h) })
	return &testEnv{router: r, settings: store, handler: h}
}

func (e *testEnv) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRFToken})
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func flashFrom(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName {
			raw, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return raw
		}
	}
	return ""
}

func TestHome_ShowsCounts(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/ui/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Dashboard")
	assert.Contains(t, body, "Active employees")
}

func TestEmployeesList_PaginatesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/ui/employees?limit=2")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, "Page 1 of 3")
	assert.Contains(t, body, "Showing 2 of 5")
	assert.Contains(t, body, "Dana Ives")
	assert.Contains(t, body, "Carl Diaz")
	assert.NotContains(t, body, "Ann Lee")
	assert.Less(t, strings.Index(body, "Dana Ives"), strings.Index(body, "Carl Diaz"))
}

func TestEmployeesList_NameFilterIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	body := env.get(t, "/ui/employees?name=AN").Body.String()
	assert.Contains(t, body, "Ann Lee")
	assert.Contains(t, body, "Joanna Hart")
	assert.Contains(t, body, "Dana Ives")
	assert.NotContains(t, body, "Bob Stone")
}

func TestEmployeesList_RoleFilter(t *testing.T) {
	env := newTestEnv(t)

	body := env.get(t, "/ui/employees?role=manager").Body.String()
	assert.Contains(t, body, "Bob Stone")
	assert.NotContains(t, body, "Ann Lee")
	assert.NotContains(t, body, "Carl Diaz")

	body = env.get(t, "/ui/employees?role=all").Body.String()
	assert.Contains(t, body, "Showing 5 of 5")
}

func TestEmployeesList_SortHeadersRoundTripState(t *testing.T) {
	env := newTestEnv(t)
	body := env.get(t, "/ui/employees?sort=name&order=asc&role=engineer").Body.String()

	assert.Less(t, strings.Index(body, "Ann Lee"), strings.Index(body, "Dana Ives"))
	assert.Less(t, strings.Index(body, "Dana Ives"), strings.Index(body, "Joanna Hart"))
	// Clicking the active column flips the order and keeps the role filter.
	assert.Contains(t, body, `href="/ui/employees?order=desc&amp;role=engineer&amp;sort=name"`)
}

func TestEmployeesList_PagePastEndRedirects(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/ui/employees?page=9&limit=2")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/employees?limit=2&page=3", rr.Header().Get("Location"))
}

func TestEmployeesCreate_UsesLowestFreeID(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/ui/employees", url.Values{
		"name":   {"Zed Park"},
		"email":  {"zed@example.com"},
		"role":   {"Manager"},
		"status": {"active"},
		"return": {"/ui/employees?page=2"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/employees?page=2", rr.Header().Get("Location"))
	assert.Equal(t, "success|Employee Zed Park saved", flashFrom(t, rr))

	rec, err := env.store.Get("employees", "5")
	require.NoError(t, err)
	assert.Equal(t, "Zed Park", rec["name"])
	assert.Equal(t, "manager", rec["role"])
}

func TestEmployeesCreate_RequiresCSRF(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/ui/employees", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	all, err := env.store.List("employees")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestEmployeesCreate_RejectsOffsiteReturn(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/ui/employees", url.Values{"name": {"X"}, "return": {"https://evil.example/ui"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/employees", rr.Header().Get("Location"))
}

func TestEmployeesEditAndUpdate(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/ui/employees/2/edit?return=%2Fui%2Femployees%3Fpage%3D2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Bob Stone"`)
	assert.Contains(t, rr.Body.String(), `value="/ui/employees?page=2"`)

	rr = env.post(t, "/ui/employees/2", url.Values{
		"name":   {"Robert Stone"},
		"email":  {"rob@example.com"},
		"role":   {"admin"},
		"status": {"inactive"},
		"return": {"/ui/employees?page=2"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/employees?page=2", rr.Header().Get("Location"))

	rec, err := env.store.Get("employees", "2")
	require.NoError(t, err)
	assert.Equal(t, "Robert Stone", rec["name"])
	assert.Equal(t, "inactive", rec["status"])
	assert.Equal(t, "2025-02-11", rec["createdAt"])
}

func TestEmployeesEdit_UnknownIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/ui/employees/404/edit").Code)
	assert.Equal(t, http.StatusBadRequest, env.get(t, "/ui/employees/abc/edit").Code)
}

func TestEmployeesDelete_KeepsAssignments(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/ui/employees/1/delete")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Delete employee Ann Lee?")

	rr = env.post(t, "/ui/employees/1/delete", url.Values{"return": {"/ui/employees"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "success|Employee Ann Lee deleted", flashFrom(t, rr))

	_, err := env.store.Get("employees", "1")
	assert.Error(t, err)
	assignments, err := env.store.List("assignments")
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func TestTrainingsList_Filters(t *testing.T) {
	env := newTestEnv(t)

	body := env.get(t, "/ui/trainings?status=passive").Body.String()
	assert.Contains(t, body, "React Advanced")
	assert.NotContains(t, body, "TypeScript 101")

	body = env.get(t, "/ui/trainings?title=SCRIPT").Body.String()
	assert.Contains(t, body, "TypeScript 101")
	assert.NotContains(t, body, "React Advanced")
	assert.Contains(t, body, "data-show")
}

func TestAssignmentsList_JoinsAndToleratesDanglingReferences(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/ui/assignments")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Ann Lee")
	assert.Contains(t, body, "TypeScript 101")
	assert.Contains(t, body, "React Advanced")
	assert.Contains(t, body, "2025-09-02")
}

func TestAssignmentsList_ReflectsRenamedEmployee(t *testing.T) {
	env := newTestEnv(t)
	require.Contains(t, env.get(t, "/ui/assignments").Body.String(), "Ann Lee")

	rr := env.post(t, "/ui/employees/1", url.Values{
		"name":   {"Ann Carter"},
		"email":  {"ann@example.com"},
		"role":   {"engineer"},
		"status": {"active"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body := env.get(t, "/ui/assignments").Body.String()
	assert.Contains(t, body, "Ann Carter")
	assert.NotContains(t, body, "Ann Lee")
}

func TestAssignmentsCreate_OneRecordPerTraining(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/ui/assignments", url.Values{
		"employee_id": {"3"},
		"training_id": {"101", "102"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/assignments", rr.Header().Get("Location"))
	assert.Equal(t, "success|2 assignment(s) created for Joanna Hart", flashFrom(t, rr))

	all, err := env.store.List("assignments")
	require.NoError(t, err)
	require.Len(t, all, 4)
	today := domain.Today(time.Now())
	for _, a := range all[2:] {
		assert.Equal(t, float64(3), a["employeeId"])
		assert.Equal(t, today, a["assignedAt"])
	}
}

func TestAssignmentsCreate_WithoutTrainingsFails(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/ui/assignments", url.Values{"employee_id": {"3"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/assignments/new", rr.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(flashFrom(t, rr), "danger|"))
}

// newEnvFailingAssignmentPosts serves the test document but answers 500 to
// every POST /assignments after the first okPosts.
func newEnvFailingAssignmentPosts(t *testing.T, okPosts int) *testEnv {
	t.Helper()
	store, err := mockapi.NewMemoryStore(testDocument())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := mockapi.NewRouter(store, mockapi.Options{Logger: logger})
	var posts atomic.Int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/assignments" {
			if int(posts.Add(1)) > okPosts {
				http.Error(w, `{"error":"storage unavailable"}`, http.StatusInternalServerError)
				return
			}
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	env := newEnvForBaseURL(t, api.URL, logger)
	env.store = store
	return env
}

func TestAssignmentsCreate_FirstWriteFailsReturnsToForm(t *testing.T) {
	env := newEnvFailingAssignmentPosts(t, 0)
	rr := env.post(t, "/ui/assignments", url.Values{
		"employee_id": {"3"},
		"training_id": {"101", "102"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/assignments/new", rr.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(flashFrom(t, rr), "danger|"))

	all, err := env.store.List("assignments")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAssignmentsCreate_PartialBatchWarns(t *testing.T) {
	env := newEnvFailingAssignmentPosts(t, 1)
	rr := env.post(t, "/ui/assignments", url.Values{
		"employee_id": {"3"},
		"training_id": {"101", "102"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/assignments", rr.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(flashFrom(t, rr), string(flashWarning)+"|"))

	all, err := env.store.List("assignments")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAssignmentsUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/ui/assignments/1001/edit")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.post(t, "/ui/assignments/1001", url.Values{
		"employee_id": {"2"},
		"training_id": {"102"},
		"assigned_at": {"2025-09-30"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rec, err := env.store.Get("assignments", "1001")
	require.NoError(t, err)
	assert.Equal(t, float64(2), rec["employeeId"])
	assert.Equal(t, "2025-09-30", rec["assignedAt"])

	rr = env.get(t, "/ui/assignments/1001/delete")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "React Advanced")

	rr = env.post(t, "/ui/assignments/1001/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	all, err := env.store.List("assignments")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, float64(1002), all[0]["id"])

	body := env.get(t, "/ui/assignments").Body.String()
	assert.NotContains(t, body, "/ui/assignments/1001/edit")
}

func TestSettings_ThemeAndLanguageApplyEverywhere(t *testing.T) {
	env := newTestEnv(t)

	rr := env.post(t, "/ui/settings", url.Values{"theme": {"dark"}, "return": {"/ui/employees"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ui/employees", rr.Header().Get("Location"))
	assert.Equal(t, settings.ThemeDark, env.settings.Get().Theme)

	rr = env.post(t, "/ui/settings", url.Values{"language": {"tr"}, "return": {"/ui/settings"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "success|Ayarlar kaydedildi", flashFrom(t, rr))

	for _, path := range []string{"/ui/employees", "/ui/trainings", "/ui/assignments"} {
		body := env.get(t, path).Body.String()
		assert.Contains(t, body, `class="dark"`, path)
		assert.Contains(t, body, `lang="tr"`, path)
		assert.Contains(t, body, "Çalışanlar", path)
	}
}

func TestSettings_RejectsUnknownValues(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/ui/settings", url.Values{"theme": {"sepia"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, strings.HasPrefix(flashFrom(t, rr), "danger|"))
	assert.Equal(t, settings.ThemeLight, env.settings.Get().Theme)
}

func TestSeedLanguage_FromAcceptLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.handler.DetectLanguage = true

	req := httptest.NewRequest(http.MethodGet, "/ui/trainings", nil)
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, i18n.TR, env.settings.Get().Language)

	req = httptest.NewRequest(http.MethodGet, "/ui/trainings", nil)
	req.Header.Set("Accept-Language", "en-US")
	env.router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, i18n.TR, env.settings.Get().Language)
}

func TestFlash_ShownOnceThenCleared(t *testing.T) {
	env := newTestEnv(t)
	cookie := &http.Cookie{Name: flashCookieName, Value: url.QueryEscape("success|Employee Ann Lee saved")}

	rr := env.get(t, "/ui/trainings", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Employee Ann Lee saved")

	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName {
			cleared = c.Value == "" && c.MaxAge < 0
		}
	}
	assert.True(t, cleared, "flash cookie should be expired")
}

func TestDataServerDown_RendersErrorPage(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	baseURL := dead.URL
	dead.Close()

	env := newEnvForBaseURL(t, baseURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rr := env.get(t, "/ui/employees")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}

func TestStaticAssetsServed(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/ui/static/css/app.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "html.dark")
}
