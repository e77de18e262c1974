// Package dummyapi is an in-memory stand-in for the remote API, used by
// tests and local development. It reproduces the behaviors the console
// depends on: 404s on unknown ids, the 409-with-suggestion on deleting a
// quiz that has attempts, and bad-credentials 401s on login.
package dummyapi

import (
	"net/http"
	"strings"
	"sync"

	"github.com/courati/console/core/auth"
	"github.com/courati/console/core/document"
	"github.com/courati/console/core/level"
	"github.com/courati/console/core/major"
	"github.com/courati/console/core/quiz"
	"github.com/courati/console/core/student"
	"github.com/courati/console/core/subject"
	"github.com/courati/console/core/teacher"
	"github.com/courati/console/upstream"
)

type (
	API struct {
		accounts  *accountTable
		levels    *levelTable
		majors    *majorTable
		subjects  *subjectTable
		teachers  *teacherTable
		students  *studentTable
		documents *documentTable
		quizzes   *quizTable
	}

	accountTable struct {
		sync.RWMutex
		table map[string]*account // keyed by username
	}

	levelTable struct {
		sync.RWMutex
		seq   int
		table map[int]*level.Level
	}

	majorTable struct {
		sync.RWMutex
		seq   int
		table map[int]*major.Major
	}

	subjectTable struct {
		sync.RWMutex
		seq    int
		aseq   int // assignment ids
		table  map[int]*subject.Subject
	}

	teacherTable struct {
		sync.RWMutex
		seq   int
		table map[int]*teacher.Teacher // keyed by UserID
	}

	studentTable struct {
		sync.RWMutex
		seq   int
		table map[int]*student.Student // keyed by UserID
	}

	documentTable struct {
		sync.RWMutex
		seq   int
		table map[int]*document.Document
	}

	quizTable struct {
		sync.RWMutex
		seq      int
		table    map[int]*quiz.Quiz
		attempts map[int][]quiz.Attempt // by quiz id
	}

	account struct {
		password string
		user     auth.User
		profile  auth.Profile
		stats    auth.Stats
	}
)

func Open() *API {
	return &API{
		accounts:  &accountTable{table: make(map[string]*account)},
		levels:    &levelTable{table: make(map[int]*level.Level)},
		majors:    &majorTable{table: make(map[int]*major.Major)},
		subjects:  &subjectTable{table: make(map[int]*subject.Subject)},
		teachers:  &teacherTable{table: make(map[int]*teacher.Teacher)},
		students:  &studentTable{table: make(map[int]*student.Student)},
		documents: &documentTable{table: make(map[int]*document.Document)},
		quizzes:   &quizTable{table: make(map[int]*quiz.Quiz), attempts: make(map[int][]quiz.Attempt)},
	}
}

func notFound(message string) error {
	return &upstream.APIError{StatusCode: http.StatusNotFound, Message: message}
}

func badRequest(message string) error {
	return &upstream.APIError{StatusCode: http.StatusBadRequest, Message: message}
}

// matches reports whether needle appears in any of the haystacks,
// case-insensitively. Empty needle matches everything.
func matches(needle string, haystacks ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, s := range haystacks {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
