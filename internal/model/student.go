package model

import "time"

// StudentStatus is the enrollment status of a student
type StudentStatus string

const (
	StatusInscrito       StudentStatus = "Inscrito"
	StatusInactivo       StudentStatus = "Inactivo"
	StatusEgresado       StudentStatus = "Egresado"
	StatusBajaTemporal   StudentStatus = "Baja temporal"
	StatusBajaDefinitiva StudentStatus = "Baja definitiva"
	StatusBajaAcademica  StudentStatus = "Baja académica"
)

// Student is a registered student. Identity and cohort are fixed at
// registration; only status and current term change afterwards.
type Student struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Matricula   string        `json:"matricula" bson:"matricula"` // 6 digits
	Name        string        `json:"name" bson:"name"`
	Career      string        `json:"career,omitempty" bson:"career,omitempty"`
	Status      StudentStatus `json:"status" bson:"status"`
	CohortID    string        `json:"cohortId" bson:"cohortId"`
	CurrentTerm int           `json:"currentTerm" bson:"currentTerm"` // cuatrimestre 1-10
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// StudentFilter narrows student queries for the dashboards
type StudentFilter struct {
	Status   StudentStatus
	Career   string
	CohortID string
}
