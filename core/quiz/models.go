package quiz

import (
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

// Question types.
const (
	TypeQCM       = "QCM"        // single correct choice
	TypeTrueFalse = "TRUE_FALSE" // fixed Vrai/Faux pair
	TypeMultiple  = "MULTIPLE"   // two or more correct choices
)

// Canonical TRUE_FALSE choice texts.
const (
	ChoiceTrue  = "Vrai"
	ChoiceFalse = "Faux"
)

// Builder steps.
const (
	StepGeneral   = 1
	StepQuestions = 2
	StepReview    = 3
)

type Quiz struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Subject           SubjectRef `json:"subject"`
	DurationMinutes   int        `json:"duration_minutes"`
	PassingPercentage int        `json:"passing_percentage"`
	MaxAttempts       null.Int   `json:"max_attempts,omitempty"` // null = unlimited
	AvailableFrom     null.Time  `json:"available_from,omitempty"`
	AvailableUntil    null.Time  `json:"available_until,omitempty"`
	IsActive          bool       `json:"is_active"`
	ShowCorrection    bool       `json:"show_correction"`
	Questions         []Question `json:"questions"`
	AttemptCount      int        `json:"attempt_count,omitempty"`
}

type SubjectRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type Question struct {
	Text         string   `json:"text"`
	QuestionType string   `json:"question_type"`
	Points       int      `json:"points"`
	Explanation  string   `json:"explanation,omitempty"`
	Choices      []Choice `json:"choices"`
}

type Choice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

// NewQuiz is the full builder payload; questions and choices are only ever
// edited as part of it.
type NewQuiz struct {
	Title             string     `json:"title" validate:"required"`
	SubjectID         int        `json:"subject" validate:"required"`
	DurationMinutes   int        `json:"duration_minutes" validate:"required,gt=0"`
	PassingPercentage int        `json:"passing_percentage" validate:"gte=0,lte=100"`
	MaxAttempts       null.Int   `json:"max_attempts,omitempty"`
	AvailableFrom     null.Time  `json:"available_from,omitempty"`
	AvailableUntil    null.Time  `json:"available_until,omitempty"`
	ShowCorrection    bool       `json:"show_correction"`
	Questions         []Question `json:"questions"`
}

// Attempt is read-only to the console; teachers view aggregated attempts.
type Attempt struct {
	ID          int        `json:"id"`
	Student     StudentRef `json:"student"`
	Score       float64    `json:"score"`
	Percentage  float64    `json:"percentage"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt null.Time  `json:"completed_at,omitempty"`
	Status      string     `json:"status"`
}

type StudentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Page is one locally-sliced page: the quizzes endpoint returns the full
// filtered set and the console paginates it client-side.
type Page struct {
	Results    []Quiz `json:"results"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

type ListFilter struct {
	Search    string
	SubjectID int
	IsActive  *bool
	Page      int
	PageSize  int
}

func (f ListFilter) Clean() ListFilter {
	f.Search = core.CleanString(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 12
	}
	return f
}

// Values omits page/page_size: pagination never reaches the upstream here.
func (f ListFilter) Values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.SubjectID != 0 {
		v.Set("subject", strconv.Itoa(f.SubjectID))
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return v
}

// ResetChoices clears a question's choice list to the canonical shape for
// its type. Switching type is destructive by design: a TRUE_FALSE question
// always ends up with exactly the fixed Vrai/Faux pair, any other type with
// two blank choices to fill in.
func (q *Question) ResetChoices() {
	switch q.QuestionType {
	case TypeTrueFalse:
		q.Choices = []Choice{
			{Text: ChoiceTrue, IsCorrect: false, Order: 1},
			{Text: ChoiceFalse, IsCorrect: false, Order: 2},
		}
	default:
		q.Choices = []Choice{
			{Order: 1},
			{Order: 2},
		}
	}
}

func (q Question) correctCount() int {
	var n int
	for _, c := range q.Choices {
		if c.IsCorrect {
			n++
		}
	}
	return n
}
