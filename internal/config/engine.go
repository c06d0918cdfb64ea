package config

// EngineConfig holds the tunable thresholds of the classification and
// scoring pipeline. Defaults match the values the dashboards were
// calibrated against; override selectively in tests.
type EngineConfig struct {
	// Risk level cut-offs over the 0-100 score
	RiskHighThreshold   int `json:"riskHighThreshold"`
	RiskMediumThreshold int `json:"riskMediumThreshold"`

	// Required stay hours for follow-up surveys
	RequiredStayHours int `json:"requiredStayHours"`

	// Overall survey score tier lower bounds
	TierExcelente int `json:"tierExcelente"`
	TierMuyBueno  int `json:"tierMuyBueno"`
	TierBueno     int `json:"tierBueno"`
	TierRegular   int `json:"tierRegular"`
}

// DefaultEngineConfig returns the default engine thresholds
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		RiskHighThreshold:   60,
		RiskMediumThreshold: 30,
		RequiredStayHours:   480,
		TierExcelente:       90,
		TierMuyBueno:        80,
		TierBueno:           70,
		TierRegular:         60,
	}
}
