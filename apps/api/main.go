package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/courati/console/apps/api/echo"
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
	logsvc "github.com/courati/console/services/logger"
	redisstore "github.com/courati/console/storage/redis"
	"github.com/courati/console/upstream"
	restapi "github.com/courati/console/upstream/rest"
)

func main() {
	std := log.New(os.Stdout, "CONSOLE : ", log.LstdFlags|log.Lshortfile)

	conf, err := core.LoadConfig()
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// validation
	validate := validator.New()
	enLocale := en.New()
	uniTranslator := ut.New(enLocale, enLocale)
	translator, _ := uniTranslator.GetTranslator(enLocale.Locale())
	core.InitValidators(validate, translator)

	// stores
	rdb, err := redisstore.Open(conf)
	errAndDie(std, err)
	defer rdb.Close()
	sessions := redisstore.NewSessionStore(rdb, conf)
	cache := redisstore.NewQueryCache(rdb)

	// upstream API client & repositories
	client, err := upstream.NewClient(conf, sessions, logger)
	errAndDie(std, err)
	authRepo := restapi.NewAuthRepository(client)
	levelRepo := restapi.NewLevelRepository(client)
	majorRepo := restapi.NewMajorRepository(client)
	subjectRepo := restapi.NewSubjectRepository(client)
	teacherRepo := restapi.NewTeacherRepository(client)
	studentRepo := restapi.NewStudentRepository(client)
	documentRepo := restapi.NewDocumentRepository(client)
	quizRepo := restapi.NewQuizRepository(client)
	teacherQuizRepo := restapi.NewTeacherQuizRepository(client)
	dashboardRepo := restapi.NewDashboardRepository(client)

	// services
	listTTL := conf.Cache.ListTTL
	opts := &echoapi.Options{
		Conf:         conf,
		Logger:       logger,
		Validate:     validate,
		Translator:   translator,
		AuthSvc:      auth.NewService(authRepo, sessions, validate, logger),
		LevelSvc:     level.NewService(levelRepo, cache, listTTL, validate),
		MajorSvc:     major.NewService(majorRepo, cache, listTTL, validate),
		SubjectSvc:   subject.NewService(subjectRepo, subjectRepo, cache, listTTL, validate),
		TeacherSvc:   teacher.NewService(teacherRepo, cache, listTTL, validate),
		StudentSvc:   student.NewService(studentRepo, cache, listTTL, validate),
		DocumentSvc:  document.NewService(documentRepo, documentRepo, cache, listTTL, validate, logger),
		QuizSvc:      quiz.NewService(quizRepo, teacherQuizRepo, cache, listTTL, validate),
		DashboardSvc: dashboard.NewService(dashboardRepo, cache, conf.Cache.DashboardTTL),
	}

	// a shutdown sentinel from the error handler stops the server like a
	// SIGTERM would
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	opts.SignalShutdown = func() { shutdown <- syscall.SIGTERM }

	app := echoapi.NewServer(opts)
	go app.Start()
	logger.Info("server started", map[string]interface{}{"addr": conf.Server.Addr, "env": conf.Env})

	sig := <-shutdown
	logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("graceful shutdown failed", err)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
