package model

// BasicMetrics are the participation-level figures of one survey
type BasicMetrics struct {
	QuestionCount      int     `json:"questionCount"`
	ParticipationTotal int     `json:"participationTotal"`
	Completed          int     `json:"completed"`
	Pending            int     `json:"pending"`
	UniqueParticipants int     `json:"uniqueParticipants"`
	ResponseCount      int     `json:"responseCount"`
	CompletionRate     float64 `json:"completionRate"` // completed/total x 100
	ResponseRate       float64 `json:"responseRate"`   // responses/(questions x participations) x 100
}

// FrequencyCount is one bar of a response histogram
type FrequencyCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericStats summarizes the numeric values embedded in answers
type NumericStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// QuestionAnalysis is the per-question breakdown of a survey dashboard
type QuestionAnalysis struct {
	QuestionID    string           `json:"questionId"`
	Title         string           `json:"title"`
	Type          QuestionType     `json:"type"`
	Topic         string           `json:"topic"`
	ResponseCount int              `json:"responseCount"`
	Frequencies   []FrequencyCount `json:"frequencies"`
	Numeric       *NumericStats    `json:"numeric,omitempty"`
}

// DocumentCompletion tracks delivery of one document sub-type
type DocumentCompletion struct {
	Document   string  `json:"document"`
	Delivered  int     `json:"delivered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DocumentMetrics for "documentos" surveys
type DocumentMetrics struct {
	ByDocument     []DocumentCompletion `json:"byDocument"`
	CompletionRate float64              `json:"completionRate"`
}

// FollowUpMetrics for "seguimiento" surveys
type FollowUpMetrics struct {
	OnTrack         int     `json:"onTrack"`
	Delayed         int     `json:"delayed"`
	AttendanceRate  float64 `json:"attendanceRate"`
	AverageHours    float64 `json:"averageHours"`
	RequiredHours   int     `json:"requiredHours"`
	HoursCompliance float64 `json:"hoursCompliance"`
	Incidents       int     `json:"incidents"`
}

// FinalMetrics for "final" surveys
type FinalMetrics struct {
	GradeAverage      float64 `json:"gradeAverage"`      // 0-10
	CompetencyAverage float64 `json:"competencyAverage"` // 0-10
	EmploymentRate    float64 `json:"employmentRate"`
	Promoters         int     `json:"promoters"`
	Detractors        int     `json:"detractors"`
	NPS               float64 `json:"nps"`
}

// CompetencyScore is one row of the company-evaluation leaderboard
type CompetencyScore struct {
	Name     string  `json:"name"`
	Average  float64 `json:"average"`
	Mentions int     `json:"mentions"`
}

// CompanyMetrics for "evaluacion_empresa" surveys
type CompanyMetrics struct {
	Competencies     []CompetencyScore `json:"competencies"`
	Satisfied        int               `json:"satisfied"`
	Neutral          int               `json:"neutral"`
	Unsatisfied      int               `json:"unsatisfied"`
	SatisfactionRate float64           `json:"satisfactionRate"`
}

// SpecificMetrics holds the type-dependent block; exactly one field is
// set, matching the inferred survey type.
type SpecificMetrics struct {
	Documentos  *DocumentMetrics `json:"documentos,omitempty"`
	Seguimiento *FollowUpMetrics `json:"seguimiento,omitempty"`
	Final       *FinalMetrics    `json:"final,omitempty"`
	Empresa     *CompanyMetrics  `json:"evaluacionEmpresa,omitempty"`
}

// Insight is one generated finding for the dashboard
type Insight struct {
	Level   string `json:"level"` // "positivo", "advertencia", "critico"
	Message string `json:"message"`
}

// Chart is a presentation-ready chart payload
type Chart struct {
	Type   string    `json:"type"` // "pie", "bar"
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// OverallScore is the survey-level score with its tier label
type OverallScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// SurveyDashboard is the consolidated per-survey payload
type SurveyDashboard struct {
	Survey          *Survey            `json:"survey"`
	InferredType    string             `json:"inferredType"`
	BasicMetrics    BasicMetrics       `json:"basicMetrics"`
	SpecificMetrics SpecificMetrics    `json:"specificMetrics"`
	Questions       []QuestionAnalysis `json:"questions"`
	Charts          []Chart            `json:"charts"`
	Insights        []Insight          `json:"insights"`
	Recommendations []string           `json:"recommendations"`
	OverallScore    OverallScore       `json:"overallScore"`
}
