package dummyapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/quiz"
	"github.com/courati/console/core/student"
)

func Test_Seed_storesDistinctRows(t *testing.T) {
	api := Open()
	students := NewStudentRepository(api)
	students.Seed(
		student.Student{Username: "amira", IsActive: true},
		student.Student{Username: "bilel", IsActive: false},
	)

	page, err := students.Query(context.Background(), student.ListFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "amira", page.Results[0].Username)
	assert.True(t, page.Results[0].IsActive)
	assert.Equal(t, "bilel", page.Results[1].Username)
	assert.False(t, page.Results[1].IsActive)
}

func Test_Seed_quizzesKeepTheirSubjects(t *testing.T) {
	api := Open()
	quizzes := NewQuizRepository(api)
	quizzes.Seed(
		quiz.Quiz{Title: "Quiz 1", Subject: quiz.SubjectRef{ID: 1}},
		quiz.Quiz{Title: "Quiz 2", Subject: quiz.SubjectRef{ID: 2}},
	)

	out, err := quizzes.Query(context.Background(), quiz.ListFilter{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Quiz 1", out[0].Title)
	assert.Equal(t, 1, out[0].Subject.ID)
	assert.Equal(t, 2, out[1].Subject.ID)
}

func Test_Query_zeroFilterDefaults(t *testing.T) {
	api := Open()
	students := NewStudentRepository(api)
	students.Seed(student.Student{Username: "amira"})

	page, err := students.Query(context.Background(), student.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Len(t, page.Results, 1)
}
