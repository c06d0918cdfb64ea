package model

import (
	"fmt"
	"time"
)

// Admission periods as encoded in the matrícula
const (
	PeriodEnero      = 1 // January admission
	PeriodSeptiembre = 3 // September admission
)

// Program length bounds in months from admission
const (
	IdealCompletionMonths = 40
	MaxCompletionMonths   = 60
)

// Cohort groups students sharing the same admission year and period.
// Created lazily the first time a matching matrícula is registered.
type Cohort struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Year   int    `json:"year" bson:"year"`
	Period int    `json:"period" bson:"period"`

	// Derived from admission; recomputed, never hand-edited
	IdealCompletion time.Time `json:"idealCompletion" bson:"idealCompletion"`
	MaxCompletion   time.Time `json:"maxCompletion" bson:"maxCompletion"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// AdmissionDate returns the first day of the cohort's admission month
func (c *Cohort) AdmissionDate() time.Time {
	month := time.January
	if c.Period == PeriodSeptiembre {
		month = time.September
	}
	return time.Date(c.Year, month, 1, 0, 0, 0, 0, time.UTC)
}

// ComputeDates recomputes the derived completion dates from admission
func (c *Cohort) ComputeDates() {
	admission := c.AdmissionDate()
	c.IdealCompletion = admission.AddDate(0, IdealCompletionMonths, 0)
	c.MaxCompletion = admission.AddDate(0, MaxCompletionMonths, 0)
}

// Label returns the display identifier, e.g. "2021-1"
func (c *Cohort) Label() string {
	return fmt.Sprintf("%d-%d", c.Year, c.Period)
}
