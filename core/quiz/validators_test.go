package quiz

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, ok := uni.GetTranslator(enLocale.Locale())
	require.True(t, ok)
	core.InitValidators(validate, translator)
	return validate
}

func validNewQuiz() NewQuiz {
	return NewQuiz{
		Title:             "Révision chapitre 1",
		SubjectID:         1,
		DurationMinutes:   30,
		PassingPercentage: 50,
		Questions: []Question{
			{
				Text:         "2 + 2 = 4 ?",
				QuestionType: TypeTrueFalse,
				Points:       1,
				Choices: []Choice{
					{Text: ChoiceTrue, IsCorrect: true, Order: 1},
					{Text: ChoiceFalse, Order: 2},
				},
			},
		},
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "expected *core.ValidationError, got %T", err)
	flds := make(map[string][]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = append(flds[f.Field], f.Error)
	}
	return flds
}

func Test_NewQuiz_ValidateStep_general(t *testing.T) {
	validate := newValidate(t)
	now := time.Now()

	t.Run("valid settings pass", func(t *testing.T) {
		nq := validNewQuiz()
		assert.NoError(t, nq.ValidateStep(StepGeneral, validate))
	})

	t.Run("missing title rejected", func(t *testing.T) {
		nq := validNewQuiz()
		nq.Title = "  "
		assert.Error(t, nq.ValidateStep(StepGeneral, validate))
	})

	t.Run("null max_attempts means unlimited", func(t *testing.T) {
		nq := validNewQuiz()
		nq.MaxAttempts = null.Int{}
		assert.NoError(t, nq.ValidateStep(StepGeneral, validate))
	})

	t.Run("zero max_attempts rejected", func(t *testing.T) {
		nq := validNewQuiz()
		nq.MaxAttempts = null.IntFrom(0)
		flds := fieldErrors(t, nq.ValidateStep(StepGeneral, validate))
		assert.Contains(t, flds, "max_attempts")
	})

	t.Run("window must be ordered", func(t *testing.T) {
		nq := validNewQuiz()
		nq.AvailableFrom = null.TimeFrom(now.Add(time.Hour))
		nq.AvailableUntil = null.TimeFrom(now)
		flds := fieldErrors(t, nq.ValidateStep(StepGeneral, validate))
		assert.Contains(t, flds, "available_until")
	})
}

func Test_NewQuiz_ValidateStep_questions(t *testing.T) {
	validate := newValidate(t)

	qcm := func(correct ...bool) Question {
		q := Question{Text: "Question?", QuestionType: TypeQCM, Points: 2}
		for i, c := range correct {
			q.Choices = append(q.Choices, Choice{Text: "choix", IsCorrect: c, Order: i + 1})
		}
		return q
	}

	tests := []struct {
		name      string
		questions []Question
		wantOK    bool
	}{
		{name: "no questions", questions: nil},
		{name: "QCM exactly one correct", questions: []Question{qcm(true, false, false)}, wantOK: true},
		{name: "QCM zero correct", questions: []Question{qcm(false, false)}},
		{name: "QCM two correct", questions: []Question{qcm(true, true, false)}},
		{name: "single choice rejected", questions: []Question{qcm(true)}},
		{
			name: "TRUE_FALSE canonical pair",
			questions: []Question{{
				Text: "Vrai?", QuestionType: TypeTrueFalse, Points: 1,
				Choices: []Choice{{Text: ChoiceTrue, IsCorrect: true, Order: 1}, {Text: ChoiceFalse, Order: 2}},
			}},
			wantOK: true,
		},
		{
			name: "TRUE_FALSE with custom texts rejected",
			questions: []Question{{
				Text: "Vrai?", QuestionType: TypeTrueFalse, Points: 1,
				Choices: []Choice{{Text: "Oui", IsCorrect: true, Order: 1}, {Text: "Non", Order: 2}},
			}},
		},
		{
			name: "TRUE_FALSE both correct rejected",
			questions: []Question{{
				Text: "Vrai?", QuestionType: TypeTrueFalse, Points: 1,
				Choices: []Choice{{Text: ChoiceTrue, IsCorrect: true, Order: 1}, {Text: ChoiceFalse, IsCorrect: true, Order: 2}},
			}},
		},
		{
			name: "MULTIPLE needs two correct",
			questions: []Question{{
				Text: "Choisir", QuestionType: TypeMultiple, Points: 3,
				Choices: []Choice{{Text: "a", IsCorrect: true, Order: 1}, {Text: "b", Order: 2}, {Text: "c", Order: 3}},
			}},
		},
		{
			name: "MULTIPLE two correct ok",
			questions: []Question{{
				Text: "Choisir", QuestionType: TypeMultiple, Points: 3,
				Choices: []Choice{{Text: "a", IsCorrect: true, Order: 1}, {Text: "b", IsCorrect: true, Order: 2}},
			}},
			wantOK: true,
		},
		{
			name: "blank choice label rejected",
			questions: []Question{{
				Text: "Question?", QuestionType: TypeQCM, Points: 1,
				Choices: []Choice{{Text: "", IsCorrect: true, Order: 1}, {Text: "b", Order: 2}},
			}},
		},
		{
			name: "unknown type rejected",
			questions: []Question{{
				Text: "Question?", QuestionType: "ESSAY", Points: 1,
				Choices: []Choice{{Text: "a", IsCorrect: true, Order: 1}, {Text: "b", Order: 2}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nq := validNewQuiz()
			nq.Questions = tt.questions
			err := nq.ValidateStep(StepQuestions, validate)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// every broken rule is reported in the same response, not one at a time
func Test_NewQuiz_ValidateStep_collectsAllViolations(t *testing.T) {
	validate := newValidate(t)
	nq := validNewQuiz()
	nq.Questions = []Question{
		{Text: "", QuestionType: TypeQCM, Points: 0, Choices: []Choice{{Text: "a", Order: 1}}},
		{Text: "ok?", QuestionType: TypeMultiple, Points: 1, Choices: []Choice{
			{Text: "a", IsCorrect: true, Order: 1}, {Text: "b", Order: 2},
		}},
	}

	flds := fieldErrors(t, nq.ValidateStep(StepQuestions, validate))
	assert.Contains(t, flds, "questions[0]")
	assert.Contains(t, flds, "questions[1]")
	assert.GreaterOrEqual(t, len(flds["questions[0]"]), 3)
}

func Test_Question_ResetChoices(t *testing.T) {
	t.Run("TRUE_FALSE gets the fixed pair", func(t *testing.T) {
		q := Question{QuestionType: TypeTrueFalse, Choices: []Choice{
			{Text: "ancienne réponse", IsCorrect: true, Order: 1},
			{Text: "autre", Order: 2},
			{Text: "encore", Order: 3},
		}}
		q.ResetChoices()
		assert.Equal(t, []Choice{
			{Text: ChoiceTrue, IsCorrect: false, Order: 1},
			{Text: ChoiceFalse, IsCorrect: false, Order: 2},
		}, q.Choices)
	})

	t.Run("other types get two blank choices", func(t *testing.T) {
		q := Question{QuestionType: TypeQCM, Choices: []Choice{{Text: ChoiceTrue, IsCorrect: true, Order: 1}}}
		q.ResetChoices()
		assert.Len(t, q.Choices, 2)
		for _, c := range q.Choices {
			assert.Empty(t, c.Text)
			assert.False(t, c.IsCorrect)
		}
	})
}
