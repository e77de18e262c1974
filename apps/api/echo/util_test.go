package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core"
	"github.com/courati/console/core/auth"
	"github.com/courati/console/core/dashboard"
	"github.com/courati/console/core/document"
	"github.com/courati/console/core/level"
	"github.com/courati/console/core/major"
	"github.com/courati/console/core/quiz"
	"github.com/courati/console/core/student"
	"github.com/courati/console/core/subject"
	"github.com/courati/console/core/teacher"
	inmemstore "github.com/courati/console/storage/inmem"
	dummyapi "github.com/courati/console/upstream/dummy"
)

const testCookieName = "courati_sessionid"

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

// testEnv wires the whole API against the dummy upstream, with the three
// console personas already registered.
type testEnv struct {
	t      *testing.T
	server Server
	conf   *core.Config

	auth      *dummyapi.AuthRepository
	levels    *dummyapi.LevelRepository
	majors    *dummyapi.MajorRepository
	subjects  *dummyapi.SubjectRepository
	teachers  *dummyapi.TeacherRepository
	students  *dummyapi.StudentRepository
	documents *dummyapi.DocumentRepository
	quizzes   *dummyapi.QuizRepository
	dashboard *dummyapi.DashboardRepository
	sessions  *inmemstore.SessionStore
}

var (
	adminUser = auth.User{
		ID: 1, Username: "admin", Email: "admin@courati.tn",
		Name: "Amine Gharbi", Role: auth.RoleAdmin, IsActive: true,
	}
	teacherUser = auth.User{
		ID: 2, Username: "prof", Email: "prof@courati.tn",
		Name: "Salma Trabelsi", Role: auth.RoleTeacher, IsActive: true,
	}
	studentUser = auth.User{
		ID: 3, Username: "etudiant", Email: "etudiant@courati.tn",
		Name: "Youssef Ben Ali", Role: auth.RoleStudent, IsActive: true,
	}
)

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := new(core.Config)
	conf.Env = "TEST"
	conf.TestMode = true
	conf.Server.CookieName = testCookieName
	conf.Server.SessionTTL = time.Hour
	conf.Cache.ListTTL = time.Minute
	conf.Cache.DashboardTTL = time.Minute

	validate := validator.New()
	enLocale := en.New()
	translator, ok := ut.New(enLocale, enLocale).GetTranslator(enLocale.Locale())
	require.True(t, ok)
	core.InitValidators(validate, translator)

	api := dummyapi.Open()
	env := &testEnv{
		t:         t,
		conf:      conf,
		auth:      dummyapi.NewAuthRepository(api),
		levels:    dummyapi.NewLevelRepository(api),
		majors:    dummyapi.NewMajorRepository(api),
		subjects:  dummyapi.NewSubjectRepository(api),
		teachers:  dummyapi.NewTeacherRepository(api),
		students:  dummyapi.NewStudentRepository(api),
		documents: dummyapi.NewDocumentRepository(api),
		quizzes:   dummyapi.NewQuizRepository(api),
		dashboard: dummyapi.NewDashboardRepository(api),
		sessions:  inmemstore.NewSessionStore(),
	}
	env.auth.SeedAccount("admin", "admin-secret", adminUser)
	env.auth.SeedAccount("prof", "prof-secret", teacherUser)
	env.auth.SeedAccount("etudiant", "etudiant-secret", studentUser)

	cache := inmemstore.NewQueryCache()
	logger := testLogger{}
	listTTL := conf.Cache.ListTTL

	env.server = NewServer(&Options{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		Validate:       validate,
		Translator:     translator,
		AuthSvc:        auth.NewService(env.auth, env.sessions, validate, logger),
		LevelSvc:       level.NewService(env.levels, cache, listTTL, validate),
		MajorSvc:       major.NewService(env.majors, cache, listTTL, validate),
		SubjectSvc:     subject.NewService(env.subjects, env.subjects, cache, listTTL, validate),
		TeacherSvc:     teacher.NewService(env.teachers, cache, listTTL, validate),
		StudentSvc:     student.NewService(env.students, cache, listTTL, validate),
		DocumentSvc:    document.NewService(env.documents, env.documents, cache, listTTL, validate, logger),
		QuizSvc:        quiz.NewService(env.quizzes, env.quizzes.TeacherView(), cache, listTTL, validate),
		DashboardSvc:   dashboard.NewService(env.dashboard, cache, conf.Cache.DashboardTTL),
	})
	return env
}

func (env *testEnv) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

// login opens a session for one of the seeded personas and hands back the
// cookie to replay on subsequent requests.
func (env *testEnv) login(username, password string) *http.Cookie {
	env.t.Helper()

	rec := env.do(http.MethodPost, "/api/session/login", auth.Credentials{Username: username, Password: password}, nil)
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := findCookie(rec, testCookieName)
	require.NotNil(env.t, cookie, "login did not set the session cookie")
	return cookie
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func jsonMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
