package dashboard

// ChartPoint is one labeled value of a chart data array. The aggregation is
// entirely server-computed; the console renders it as-is.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	TotalStudents  int `json:"total_students"`
	TotalTeachers  int `json:"total_teachers"`
	TotalSubjects  int `json:"total_subjects"`
	TotalDocuments int `json:"total_documents"`
	TotalQuizzes   int `json:"total_quizzes"`
	ActiveStudents int `json:"active_students"`

	StudentsPerLevel  []ChartPoint `json:"students_per_level"`
	StudentsPerMajor  []ChartPoint `json:"students_per_major"`
	DocumentsPerType  []ChartPoint `json:"documents_per_type"`
	RecentSignups     []ChartPoint `json:"recent_signups"`
}

// TeacherStats is the teacher dashboard payload, scoped to the caller's
// assignments.
type TeacherStats struct {
	SubjectCount  int `json:"subject_count"`
	DocumentCount int `json:"document_count"`
	QuizCount     int `json:"quiz_count"`
	StudentCount  int `json:"student_count"`

	DocumentsPerSubject []ChartPoint `json:"documents_per_subject"`
	QuizAverages        []ChartPoint `json:"quiz_averages"`
	RecentAttempts      []ChartPoint `json:"recent_attempts"`
}
