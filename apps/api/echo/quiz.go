package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/quiz"
)

type quizApi struct {
	opts *Options
	own  bool // teacher surface: upstream-scoped to the caller's subjects
}

// registerQuizAPI serves both consoles with the same handler set; the
// teacher surface goes through the upstream's teacher endpoints, which
// restrict every operation to the caller's assigned subjects.
func registerQuizAPI(g *echo.Group, opts *Options, own bool) {
	api := quizApi{opts: opts, own: own}

	g.GET("/quizzes", api.query)
	g.POST("/quizzes", api.create)
	g.POST("/quizzes/validate-step", api.validateStep)
	g.GET("/quizzes/:id", api.retrieve)
	g.PUT("/quizzes/:id", api.update)
	g.DELETE("/quizzes/:id", api.destroy)
	g.POST("/quizzes/:id/toggle-active", api.toggleActive)
	g.GET("/quizzes/:id/attempts", api.attempts)
}

type quizResponse struct {
	Success string    `json:"success"`
	Quiz    quiz.Quiz `json:"quiz"`
}

func (api *quizApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	filter := quiz.ListFilter{
		Search:    q.Search,
		SubjectID: q.SubjectID,
		IsActive:  q.IsActive,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}

	var page quiz.Page
	if api.own {
		page, err = api.opts.QuizSvc.ListOwn(ctx.Request().Context(), filter)
	} else {
		page, err = api.opts.QuizSvc.List(ctx.Request().Context(), filter)
	}
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var qz quiz.Quiz
	if api.own {
		qz, err = api.opts.QuizSvc.GetOwn(ctx.Request().Context(), id)
	} else {
		qz, err = api.opts.QuizSvc.Get(ctx.Request().Context(), id)
	}
	if err != nil {
		return errors.Wrap(err, "fetching quiz")
	}
	return ctx.JSON(http.StatusOK, qz)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	var qz quiz.Quiz
	var err error
	if api.own {
		qz, err = api.opts.QuizSvc.CreateOwn(ctx.Request().Context(), data)
	} else {
		qz, err = api.opts.QuizSvc.Create(ctx.Request().Context(), data)
	}
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, quizResponse{Success: "Quiz créé avec succès.", Quiz: qz})
}

func (api *quizApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	var qz quiz.Quiz
	if api.own {
		qz, err = api.opts.QuizSvc.UpdateOwn(ctx.Request().Context(), id, data)
	} else {
		qz, err = api.opts.QuizSvc.Update(ctx.Request().Context(), id, data)
	}
	if err != nil {
		return errors.Wrap(err, "updating quiz")
	}
	return ctx.JSON(http.StatusOK, quizResponse{Success: "Quiz mis à jour avec succès.", Quiz: qz})
}

// destroy may answer 409 with the server's suggestion when the quiz
// already has attempts; the error handler passes both through.
func (api *quizApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if api.own {
		err = api.opts.QuizSvc.DeleteOwn(ctx.Request().Context(), id)
	} else {
		err = api.opts.QuizSvc.Delete(ctx.Request().Context(), id)
	}
	if err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Quiz supprimé avec succès."})
}

func (api *quizApi) toggleActive(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var qz quiz.Quiz
	if api.own {
		qz, err = api.opts.QuizSvc.ToggleActiveOwn(ctx.Request().Context(), id)
	} else {
		qz, err = api.opts.QuizSvc.ToggleActive(ctx.Request().Context(), id)
	}
	if err != nil {
		return errors.Wrap(err, "toggling quiz")
	}
	return ctx.JSON(http.StatusOK, quizResponse{Success: "Statut du quiz mis à jour.", Quiz: qz})
}

func (api *quizApi) attempts(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var attempts []quiz.Attempt
	if api.own {
		attempts, err = api.opts.QuizSvc.AttemptsOwn(ctx.Request().Context(), id)
	} else {
		attempts, err = api.opts.QuizSvc.Attempts(ctx.Request().Context(), id)
	}
	if err != nil {
		return errors.Wrap(err, "querying attempts")
	}
	return ctx.JSON(http.StatusOK, attempts)
}

type validateStepRequest struct {
	Step int          `json:"step"`
	Quiz quiz.NewQuiz `json:"quiz"`
}

// validateStep gates the builder wizard: the browser asks before moving to
// the next step, and all violations of the current step come back at once.
func (api *quizApi) validateStep(ctx echo.Context) error {
	var data validateStepRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to validateStepRequest")
	}
	if err := api.opts.QuizSvc.ValidateStep(&data.Quiz, data.Step); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Étape validée."})
}
