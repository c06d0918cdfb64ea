package model

import "time"

// CourseStatus of one course row in the academic history
type CourseStatus string

const (
	CourseAprobada  CourseStatus = "Aprobada"
	CourseReprobada CourseStatus = "Reprobada"
	CourseCursando  CourseStatus = "Cursando"
)

// AcademicRecord is one row per course per term, append-only.
// FinalGrade 0 means the course has not been graded yet.
type AcademicRecord struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	StudentID  string       `json:"studentId" bson:"studentId"`
	Matricula  string       `json:"matricula" bson:"matricula"`
	Course     string       `json:"course" bson:"course"`
	Term       string       `json:"term" bson:"term"` // e.g. "2023-2"
	CohortTag  string       `json:"cohortTag" bson:"cohortTag"`
	FinalGrade float64      `json:"finalGrade" bson:"finalGrade"`
	Status     CourseStatus `json:"status" bson:"status"`
	ExtraGrade float64      `json:"extraGrade,omitempty" bson:"extraGrade,omitempty"` // extraordinary exam, 0 if unused
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt"`
}

// Graded reports whether the row carries a usable final grade
func (r *AcademicRecord) Graded() bool {
	return r.FinalGrade > 0
}

// Failed reports whether the course was failed. Status is the source
// of truth, not the grade; callers that score risk only consult rows
// that passed Graded first.
func (r *AcademicRecord) Failed() bool {
	return r.Status == CourseReprobada || r.Status == "Reprobado"
}
