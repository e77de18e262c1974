package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool
		// SignalShutdown is called when a shutdown sentinel reaches the
		// error handler; main uses it to stop the server gracefully.
		SignalShutdown func()

		Validate   *validator.Validate
		Translator ut.Translator

		AuthSvc      *auth.Service
		LevelSvc     *level.Service
		MajorSvc     *major.Service
		SubjectSvc   *subject.Service
		TeacherSvc   *teacher.Service
		StudentSvc   *student.Service
		DocumentSvc  *document.Service
		QuizSvc      *quiz.Service
		DashboardSvc *dashboard.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, conf.Debug, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api", sessionMiddleware(s.opts.AuthSvc, conf))

	registerSessionAPI(api, s.opts)
	registerProfileAPI(api.Group("/profile", requireAuthenticated()), s.opts)

	admin := api.Group("/admin", requireRole(auth.RoleAdmin))
	registerLevelAPI(admin, s.opts)
	registerMajorAPI(admin, s.opts)
	registerSubjectAPI(admin, s.opts)
	registerTeacherAPI(admin, s.opts)
	registerStudentAPI(admin, s.opts)
	registerDocumentAPI(admin, s.opts)
	registerQuizAPI(admin, s.opts, false)
	admin.GET("/dashboard", adminDashboard(s.opts))

	tch := api.Group("/teacher", requireRole(auth.RoleTeacher))
	registerTeacherSubjectAPI(tch, s.opts)
	registerTeacherDocumentAPI(tch, s.opts)
	registerQuizAPI(tch, s.opts, true)
	tch.GET("/dashboard", teacherDashboard(s.opts))
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Server.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Courati Console!")
}
