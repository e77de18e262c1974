package quiz

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

// ValidateStep gates the builder's wizard transitions. Step 1 checks the
// general metadata, step 2 the question/choice invariants, step 3 (review)
// re-checks both before submit. All violated rules are collected and
// returned together so the form can surface them as one combined message.
func (nq *NewQuiz) ValidateStep(step int, validate *validator.Validate) error {
	switch step {
	case StepGeneral:
		return nq.validateGeneral(validate)
	case StepQuestions:
		return nq.validateQuestions()
	case StepReview:
		if err := nq.validateGeneral(validate); err != nil {
			return err
		}
		return nq.validateQuestions()
	default:
		return errors.Errorf("unknown builder step %d", step)
	}
}

func (nq *NewQuiz) validateGeneral(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	if err := validate.Struct(nq); err != nil {
		return err
	}

	var flds []core.FieldError
	if nq.MaxAttempts.Valid && nq.MaxAttempts.Int < 1 {
		flds = append(flds, core.FieldError{Field: "max_attempts", Error: "doit être vide (illimité) ou supérieur à zéro"})
	}
	if nq.AvailableFrom.Valid && nq.AvailableUntil.Valid && !nq.AvailableFrom.Time.Before(nq.AvailableUntil.Time) {
		flds = append(flds, core.FieldError{Field: "available_until", Error: "doit être postérieure à la date de début"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid quiz settings"), flds...)
	}
	return nil
}

func (nq *NewQuiz) validateQuestions() error {
	var flds []core.FieldError
	add := func(idx int, msg string) {
		flds = append(flds, core.FieldError{Field: fmt.Sprintf("questions[%d]", idx), Error: msg})
	}

	if len(nq.Questions) == 0 {
		flds = append(flds, core.FieldError{Field: "questions", Error: "le quiz doit contenir au moins une question"})
	}
	for i, q := range nq.Questions {
		if core.CleanString(q.Text) == "" {
			add(i, "l'énoncé est requis")
		}
		if q.Points <= 0 {
			add(i, "le barème doit être supérieur à zéro")
		}
		if len(q.Choices) < 2 {
			add(i, "au moins 2 choix sont requis")
		}
		correct := q.correctCount()
		if correct < 1 {
			add(i, "au moins un choix correct est requis")
		}

		switch q.QuestionType {
		case TypeQCM:
			if correct != 1 {
				add(i, "une question QCM doit avoir exactement un choix correct")
			}
		case TypeTrueFalse:
			if !isCanonicalTrueFalse(q) {
				add(i, `une question Vrai/Faux doit avoir exactement les deux choix "Vrai" et "Faux"`)
			}
			if correct != 1 {
				add(i, "une question Vrai/Faux doit avoir exactement un choix correct")
			}
		case TypeMultiple:
			if correct < 2 {
				add(i, "une question à choix multiples doit avoir au moins deux choix corrects")
			}
		default:
			add(i, fmt.Sprintf("type de question inconnu: %q", q.QuestionType))
		}

		for _, c := range q.Choices {
			if q.QuestionType != TypeTrueFalse && core.CleanString(c.Text) == "" {
				add(i, "chaque choix doit avoir un libellé")
				break
			}
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid quiz questions"), flds...)
	}
	return nil
}

func isCanonicalTrueFalse(q Question) bool {
	if len(q.Choices) != 2 {
		return false
	}
	return q.Choices[0].Text == ChoiceTrue && q.Choices[1].Text == ChoiceFalse
}
