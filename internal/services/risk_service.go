package services

import (
	"fmt"
	"log"
	"strings"

	"diacheck/internal/models"
	"diacheck/pkg/rabbitmq"
)

// RiskService produces diabetes-risk assessments. The score itself is a
// pure threshold heuristic; when an external model service is configured
// its probability and prediction take precedence, with the heuristic as
// fallback for the single best-effort forwarded call.
type RiskService struct {
	model    *ModelClient     // optional, may be nil
	mqClient *rabbitmq.Client // optional, may be nil
}

// NewRiskService creates a new RiskService.
func NewRiskService(model *ModelClient, mqClient *rabbitmq.Client) *RiskService {
	return &RiskService{
		model:    model,
		mqClient: mqClient,
	}
}

// Assess validates the input and computes an assessment. All fields except
// pregnancies are required; pregnancies defaults to 0.
func (s *RiskService) Assess(input *models.RiskInput) (*models.RiskAssessment, error) {
	if err := validateRiskInput(input); err != nil {
		return nil, err
	}

	result := scoreRisk(input)

	if s.model != nil {
		remote, err := s.model.Predict(featureVector(input))
		if err != nil {
			// One forwarded call, no retry. Fall back to the heuristic.
			log.Printf("Model service unavailable, using heuristic score: %v", err)
		} else {
			result.Probability = remote.Probability
			result.Prediction = remote.Prediction
			result.Source = models.SourceModel
		}
	}

	s.publishAssessment(input, result)
	return result, nil
}

// validateRiskInput reports every missing required field at once.
func validateRiskInput(input *models.RiskInput) error {
	var missing []string
	if input.Glucose == nil {
		missing = append(missing, "glucose")
	}
	if input.BloodPressure == nil {
		missing = append(missing, "bloodPressure")
	}
	if input.SkinThickness == nil {
		missing = append(missing, "skinThickness")
	}
	if input.Insulin == nil {
		missing = append(missing, "insulin")
	}
	if input.BMI == nil {
		missing = append(missing, "bmi")
	}
	if input.DiabetesPedigree == nil {
		missing = append(missing, "diabetesPedigree")
	}
	if input.Age == nil {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// scoreRisk accumulates the risk score from independent threshold rules.
// Maximum attainable score is 11.
func scoreRisk(input *models.RiskInput) *models.RiskAssessment {
	score := 0

	// Glucose level (70-140 mg/dL is normal)
	switch {
	case *input.Glucose > 140:
		score += 2
	case *input.Glucose > 100:
		score++
	}

	// Blood pressure (normal: 90-120)
	switch {
	case *input.BloodPressure > 140:
		score += 2
	case *input.BloodPressure > 120:
		score++
	}

	// BMI (normal: 18.5-24.9)
	switch {
	case *input.BMI > 30:
		score += 2
	case *input.BMI > 25:
		score++
	}

	// Age (risk increases with age)
	switch {
	case *input.Age > 45:
		score += 2
	case *input.Age > 35:
		score++
	}

	// Insulin (normal: 3-25 uU/mL)
	if *input.Insulin > 25 {
		score++
	}

	// Diabetes pedigree function (higher values indicate higher risk)
	switch {
	case *input.DiabetesPedigree > 1.5:
		score += 2
	case *input.DiabetesPedigree > 0.8:
		score++
	}

	probability := float64(score) / 10
	if probability > 1 {
		probability = 1
	}

	return &models.RiskAssessment{
		RiskScore:   score,
		Probability: probability,
		Prediction:  probability > 0.5,
		Source:      models.SourceHeuristic,
	}
}

// featureVector flattens the input in the order the model service was
// trained with: pregnancies, glucose, bloodPressure, skinThickness,
// insulin, bmi, diabetesPedigree, age.
func featureVector(input *models.RiskInput) []float64 {
	pregnancies := 0
	if input.Pregnancies != nil {
		pregnancies = *input.Pregnancies
	}
	return []float64{
		float64(pregnancies),
		*input.Glucose,
		*input.BloodPressure,
		*input.SkinThickness,
		*input.Insulin,
		*input.BMI,
		*input.DiabetesPedigree,
		float64(*input.Age),
	}
}

// publishAssessment emits an assessment event when a broker is configured.
// Best effort: a publish failure never fails the request.
func (s *RiskService) publishAssessment(input *models.RiskInput, result *models.RiskAssessment) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"riskScore":   result.RiskScore,
		"probability": result.Probability,
		"prediction":  result.Prediction,
		"source":      result.Source,
		"glucose":     *input.Glucose,
		"bmi":         *input.BMI,
		"age":         *input.Age,
	}
	if err := s.mqClient.PublishAssessmentCompleted(event); err != nil {
		log.Printf("Failed to publish assessment event: %v", err)
	}
}
