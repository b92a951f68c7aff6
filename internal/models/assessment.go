package models

// RiskInput is the set of physiological measurements an assessment is
// computed from. Pointer fields distinguish "absent" from a literal zero;
// Pregnancies is the only optional field and defaults to 0.
type RiskInput struct {
	Pregnancies      *int     `json:"pregnancies"`
	Glucose          *float64 `json:"glucose" validate:"required"`
	BloodPressure    *float64 `json:"bloodPressure" validate:"required"`
	SkinThickness    *float64 `json:"skinThickness" validate:"required"`
	Insulin          *float64 `json:"insulin" validate:"required"`
	BMI              *float64 `json:"bmi" validate:"required"`
	DiabetesPedigree *float64 `json:"diabetesPedigree" validate:"required"`
	Age              *int     `json:"age" validate:"required"`
}

// RiskAssessment is the result of scoring one RiskInput. It is computed per
// request and never persisted.
type RiskAssessment struct {
	RiskScore   int     `json:"riskScore"`
	Probability float64 `json:"probability"`
	Prediction  bool    `json:"prediction"`
	// Source records whether the numbers came from the inline heuristic
	// or the external model service.
	Source string `json:"source"`
}

// Assessment sources.
const (
	SourceHeuristic = "heuristic"
	SourceModel     = "model"
)
