package model

// RiskLevel categorizes the academic-risk score
type RiskLevel string

const (
	RiskBajo  RiskLevel = "bajo"
	RiskMedio RiskLevel = "medio"
	RiskAlto  RiskLevel = "alto"
)

// RiskAssessment is the derived risk profile of one student,
// recomputed from the full academic history on every request.
type RiskAssessment struct {
	StudentID   string        `json:"studentId"`
	Matricula   string        `json:"matricula"`
	Name        string        `json:"name"`
	Career      string        `json:"career,omitempty"`
	Status      StudentStatus `json:"status"`
	CohortYear  int           `json:"cohortYear"`
	CurrentTerm int           `json:"currentTerm"`

	Level   RiskLevel `json:"level"`
	Score   int       `json:"score"` // 0-100
	Factors []string  `json:"factors"`

	// Raw figures for downstream display
	Average       float64 `json:"average"`
	GradedCourses int     `json:"gradedCourses"`
	FailedCount   int     `json:"failedCount"`
	ExtraCount    int     `json:"extraCount"`
}

// RiskFilters narrow the risk dashboard before grouping
type RiskFilters struct {
	CohortYear int
	Career     string
	RiskLevel  RiskLevel
	Status     StudentStatus
}

// RiskStatistics summarizes the filtered student set
type RiskStatistics struct {
	Total         int     `json:"total"`
	Low           int     `json:"low"`
	Medium        int     `json:"medium"`
	High          int     `json:"high"`
	LowPercent    float64 `json:"lowPercent"`
	MediumPercent float64 `json:"mediumPercent"`
	HighPercent   float64 `json:"highPercent"`
	AverageScore  float64 `json:"averageScore"`
}

// CohortRisk is the risk distribution inside one cohort
type CohortRisk struct {
	CohortYear int `json:"cohortYear"`
	Low        int `json:"low"`
	Medium     int `json:"medium"`
	High       int `json:"high"`
	Total      int `json:"total"`
}

// RiskDashboard is the consolidated risk payload
type RiskDashboard struct {
	Statistics RiskStatistics   `json:"statistics"`
	Students   []RiskAssessment `json:"students"`
	Cohorts    []CohortRisk     `json:"cohorts"`
}
