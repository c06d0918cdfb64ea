package model

// RequirementTag names a graduation-readiness check extracted from
// survey answers.
type RequirementTag string

const (
	ReqTermsCompleted     RequirementTag = "terms_completed"
	ReqPaymentsCurrent    RequirementTag = "payments_current"
	ReqGraduationFeesPaid RequirementTag = "graduation_fees_paid"
	ReqESignatureValid    RequirementTag = "e_signature_valid"

	// Tracked for the requirements summary only; excluded from the
	// regularity balance and from the 4-tag core count.
	ReqEnglishAccredited RequirementTag = "english_accredited"
)

// CoreRequirements are the four tags that feed the regular/irregular
// classification.
var CoreRequirements = []RequirementTag{
	ReqTermsCompleted,
	ReqPaymentsCurrent,
	ReqGraduationFeesPaid,
	ReqESignatureValid,
}

// RequirementNames maps tags to display names in the reports
var RequirementNames = map[RequirementTag]string{
	ReqTermsCompleted:     "Cuatrimestres completados",
	ReqPaymentsCurrent:    "Pagos al corriente",
	ReqGraduationFeesPaid: "Gastos de titulación cubiertos",
	ReqESignatureValid:    "E.FIRMA vigente",
	ReqEnglishAccredited:  "Inglés acreditado",
}

// AnswerSignal is the classifier output for a single answer.
// Hits holds requirement rules that fired: value true for a positive
// firing, false for a negative one.
type AnswerSignal struct {
	Positive int
	Negative int
	Hits     map[RequirementTag]bool
}

// Weight is the net per-answer weight, clamped to [-10, +10]
func (s AnswerSignal) Weight() int {
	w := s.Positive - s.Negative
	if w > 10 {
		return 10
	}
	if w < -10 {
		return -10
	}
	return w
}

// StudentClassification is the derived regularity label for one
// student, recomputed fresh on every query.
type StudentClassification struct {
	StudentID       string                  `json:"studentId"`
	Matricula       string                  `json:"matricula"`
	Name            string                  `json:"name"`
	Status          StudentStatus           `json:"status"`
	CohortYear      int                     `json:"cohortYear"`
	CohortPeriod    int                     `json:"cohortPeriod"`
	CurrentTerm     int                     `json:"currentTerm"`
	Balance         int                     `json:"balance"`
	Requirements    map[RequirementTag]bool `json:"requirements"`
	RequirementsMet int                     `json:"requirementsMet"`
	Regular         bool                    `json:"regular"`
	AnswerCount     int                     `json:"answerCount"`
	NumericAverage  float64                 `json:"numericAverage"`
}

// Classification returns the display label
func (c *StudentClassification) Classification() string {
	if c.Regular {
		return "regular"
	}
	return "irregular"
}

// RegularityDistribution counts regular vs irregular students
type RegularityDistribution struct {
	Regular   int `json:"regular"`
	Irregular int `json:"irregular"`
	Total     int `json:"total"`
}

// CohortComparison groups classification results per cohort
type CohortComparison struct {
	CohortYear     int     `json:"cohortYear"`
	CohortPeriod   int     `json:"cohortPeriod"`
	Regular        int     `json:"regular"`
	Irregular      int     `json:"irregular"`
	MeanBalance    float64 `json:"meanBalance"`
	MeanNumericAvg float64 `json:"meanNumericAvg"`
}

// RequirementCompletion is the per-requirement completion summary
type RequirementCompletion struct {
	Tag        RequirementTag `json:"tag"`
	Name       string         `json:"name"`
	Satisfied  int            `json:"satisfied"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
}

// GraduationMetrics summarizes graduation readiness across a cohort set
type GraduationMetrics struct {
	Egresados     int                     `json:"estudiantesEgresados"`
	ProximoEgreso int                     `json:"proximoEgreso"`
	Requirements  []RequirementCompletion `json:"requirements"`
}

// StudentRequirementReport lists what a student is still missing
type StudentRequirementReport struct {
	StudentID    string   `json:"studentId"`
	Matricula    string   `json:"matricula"`
	Name         string   `json:"name"`
	CohortYear   int      `json:"cohortYear"`
	Missing      []string `json:"missing"`
	MissingCount int      `json:"missingCount"`
}

// TimelineEntry is the regularity split for one admission year
type TimelineEntry struct {
	Year      int `json:"year"`
	Regular   int `json:"regular"`
	Irregular int `json:"irregular"`
}

// CohortCompleteData is the consolidated cohort dashboard payload
type CohortCompleteData struct {
	Students               []StudentClassification    `json:"students"`
	StatusDistribution     map[StudentStatus]int      `json:"statusDistribution"`
	Distribution           RegularityDistribution     `json:"distribution"`
	GraduationRequirements []StudentRequirementReport `json:"graduationRequirements"`
	Timeline               []TimelineEntry            `json:"timeline"`
	CohortComparison       []CohortComparison         `json:"cohortComparison"`
	GraduationMetrics      GraduationMetrics          `json:"graduationMetrics"`
	Cohorts                []*Cohort                  `json:"cohorts"`
}
