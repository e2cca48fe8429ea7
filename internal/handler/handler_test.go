package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/db"
	"github.com/bienestar-app/bienestar/internal/middleware"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/progress"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/service"
)

var santiago = time.FixedZone("CLT", -4*60*60)

type testServer struct {
	handler http.Handler
	auth    *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	users := repository.NewUserRepository(database)
	profiles := repository.NewProfileRepository(database)
	entries := repository.NewGratitudeEntryRepository(database)
	moods := repository.NewMoodRecordRepository(database)

	catalog := progress.DefaultCatalog()
	email := service.NewEmailService("", "noreply@example.com", "http://localhost:8090", "Bienestar", true)
	authService := service.NewAuthService(users, profiles, email, "test-secret", time.Hour, true)
	userService := service.NewUserService(users)
	profileService := service.NewProfileService(profiles)
	progressService := service.NewProgressService(repository.NewProgressRepository(database), entries, catalog, santiago, 3)
	badgeService := service.NewBadgeService(repository.NewBadgeRepository(database), catalog)
	gratitudeService := service.NewGratitudeService(entries, users, profiles, progressService, badgeService, email, santiago)
	climateService := service.NewClimateService(profiles, moods, santiago, 15)

	resourceService, err := service.NewResourceService(fstest.MapFS{
		"apoyo-inmediato.md": {Data: []byte("---\ntitle: Apoyo inmediato\norder: 0\n---\n# Apoyo\n")},
	})
	require.NoError(t, err)

	auth := NewAuthHandler(authService, userService, profileService)
	gratitude := NewGratitudeHandler(gratitudeService, santiago)
	mood := NewMoodHandler(service.NewMoodService(moods), santiago)
	prog := NewProgressHandler(progressService, badgeService)
	climate := NewClimateHandler(climateService, service.NewReportService(climateService, nil), santiago)
	patterns := NewPatternHandler(service.NewPatternService(moods, entries, profiles, 3, santiago))
	resources := NewResourceHandler(resourceService)

	student := middleware.RequireRole(model.RoleStudent)
	staff := middleware.RequireRole(model.RoleTeacher, model.RoleDirector)
	director := middleware.RequireRole(model.RoleDirector)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", NewHealthHandler(database).Healthz)
	mux.HandleFunc("POST /api/auth/register", auth.Register)
	mux.HandleFunc("POST /api/auth/login", auth.Login)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("PATCH /api/me/name", middleware.RequireAuth(auth.UpdateName))
	mux.HandleFunc("POST /api/me/password", middleware.RequireAuth(auth.UpdatePassword))
	mux.HandleFunc("POST /api/gratitude", student(gratitude.Create))
	mux.HandleFunc("GET /api/gratitude", student(gratitude.List))
	mux.HandleFunc("POST /api/moods", student(mood.Create))
	mux.HandleFunc("GET /api/moods", student(mood.List))
	mux.HandleFunc("GET /api/me/progress", student(prog.Progress))
	mux.HandleFunc("GET /api/me/badges", student(prog.Badges))
	mux.HandleFunc("POST /api/me/badges/notified", student(prog.MarkNotified))
	mux.HandleFunc("GET /api/me/patterns", student(patterns.Mine))
	mux.HandleFunc("GET /api/climate/daily", staff(climate.Daily))
	mux.HandleFunc("GET /api/climate/weekly", staff(climate.Weekly))
	mux.HandleFunc("POST /api/climate/weekly/reports", director(climate.PublishWeekly))
	mux.HandleFunc("GET /api/students/{id}/patterns", staff(patterns.Student))
	mux.HandleFunc("GET /api/resources", resources.List)
	mux.HandleFunc("GET /api/resources/{slug}", resources.Show)
	mux.HandleFunc("/{path...}", NotFound)

	return &testServer{
		handler: middleware.Chain(mux, middleware.AuthMiddleware(authService, userService, profileService)),
		auth:    authService,
	}
}

// account creates a user through the service and returns a bearer token.
func (s *testServer) account(t *testing.T, role model.Role, group string) (string, *model.Profile) {
	t.Helper()

	user, profile, err := s.auth.CreateAccount(service.RegisterInput{
		Email:     uuid.New().String()[:8] + "@colegio.cl",
		Password:  "Girasol-azul-77",
		Name:      "Persona de prueba",
		GroupName: group,
		Role:      role,
	})
	require.NoError(t, err)

	token, _, err := s.auth.GenerateJWT(user, profile)
	require.NoError(t, err)
	return token, profile
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "Sofia@Colegio.cl",
		"password":   "Girasol-azul-77",
		"name":       "Sofía",
		"group_name": "7B",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "student", body["profile"].(map[string]any)["role"])

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "sofia@colegio.cl",
		"password":   "Girasol-azul-77",
		"name":       "Otra",
		"group_name": "7B",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "sofia@colegio.cl",
		"password": "wrong-password-1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "sofia@colegio.cl",
		"password": "Girasol-azul-77",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)

	rec = s.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "sofia@colegio.cl", me["user"].(map[string]any)["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "not-an-email",
		"password":   "Girasol-azul-77",
		"name":       "Sofía",
		"group_name": "7B",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decode(t, rec)["field"])

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{"email": 42})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", "garbage", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/nope", "", nil).Code)
}

func TestUpdateNameAndPassword(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.account(t, model.RoleStudent, "7B")

	rec := s.do(t, http.MethodPatch, "/api/me/name", token, map[string]string{"name": "  Nuevo Nombre "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Nuevo Nombre", decode(t, rec)["name"])

	rec = s.do(t, http.MethodPost, "/api/me/password", token, map[string]string{
		"current_password": "incorrecta-123",
		"new_password":     "Otra-clave-segura-9",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "current_password", decode(t, rec)["field"])

	rec = s.do(t, http.MethodPost, "/api/me/password", token, map[string]string{
		"current_password": "Girasol-azul-77",
		"new_password":     "Otra-clave-segura-9",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGratitudeFlow(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.account(t, model.RoleStudent, "7B")

	rec := s.do(t, http.MethodPost, "/api/gratitude", token, map[string]string{"text": "Agradezco a mi familia"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)

	prog := body["progress"].(map[string]any)
	assert.EqualValues(t, 1, prog["total_entries"])
	assert.EqualValues(t, 1, prog["current_streak"])

	badges := body["new_badges"].([]any)
	require.Len(t, badges, 1)
	assert.Equal(t, "total_1", badges[0].(map[string]any)["id"])

	rec = s.do(t, http.MethodPost, "/api/gratitude", token, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/gratitude", token, map[string]string{"text": "Algo", "date": "mañana"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "date", decode(t, rec)["field"])

	rec = s.do(t, http.MethodGet, "/api/gratitude", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["entries"], 1)

	rec = s.do(t, http.MethodGet, "/api/me/progress", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode(t, rec)
	assert.EqualValues(t, 1, view["active_streak"])
	categories := view["categories"].([]any)
	require.Len(t, categories, 1)
	assert.Equal(t, "familia", categories[0].(map[string]any)["category"])
	assert.EqualValues(t, 100, categories[0].(map[string]any)["percent"])

	rec = s.do(t, http.MethodGet, "/api/me/badges", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	statuses := decode(t, rec)["badges"].([]any)
	assert.Len(t, statuses, len(progress.DefaultCatalog().Badges()))

	rec = s.do(t, http.MethodPost, "/api/me/badges/notified", token, map[string][]string{"badge_ids": {"total_1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["updated"])
}

func TestMoodFlow(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.account(t, model.RoleStudent, "7B")

	rec := s.do(t, http.MethodPost, "/api/moods", token, map[string]string{
		"mood": "Regular", "emotion": "feliz", "place": "casa",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "mood", decode(t, rec)["field"])

	rec = s.do(t, http.MethodPost, "/api/moods", token, map[string]string{
		"mood": "Muy bien", "emotion": "feliz", "place": "casa",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/moods?since=2000-01-01", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["records"], 1)

	rec = s.do(t, http.MethodGet, "/api/me/patterns", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode(t, rec)
	assert.EqualValues(t, 1, report["mood_count"])
	assert.Equal(t, false, report["needs_immediate"])
}

func TestClimateAccess(t *testing.T) {
	s := newTestServer(t)
	studentToken, student := s.account(t, model.RoleStudent, "7B")
	teacherToken, _ := s.account(t, model.RoleTeacher, "7B")
	otherTeacherToken, _ := s.account(t, model.RoleTeacher, "8A")
	directorToken, _ := s.account(t, model.RoleDirector, "")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/climate/daily", studentToken, nil).Code)

	rec := s.do(t, http.MethodGet, "/api/climate/daily", teacherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	daily := decode(t, rec)
	assert.Equal(t, "insufficient_data", daily["status"])
	assert.Equal(t, "7B", daily["group"])
	assert.Nil(t, daily["summary"])

	rec = s.do(t, http.MethodGet, "/api/climate/daily?group=8A", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/climate/weekly?end=2025-05-12", directorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decode(t, rec)
	assert.Equal(t, "2025-05-06", weekly["start"])
	assert.Nil(t, weekly["trend"])

	rec = s.do(t, http.MethodGet, "/api/climate/weekly?end=12-05-2025", directorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/climate/weekly/reports", teacherToken, map[string]string{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/climate/weekly/reports", directorToken, map[string]string{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	path := "/api/students/" + student.UserID + "/patterns"
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, teacherToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, directorToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, otherTeacherToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, studentToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/students/missing/patterns", directorToken, nil).Code)
}

func TestResources(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/resources", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["resources"].([]any)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].(map[string]any)["html"])

	rec = s.do(t, http.MethodGet, "/api/resources/apoyo-inmediato", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["html"], "<h1")

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/resources/nada", "", nil).Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
