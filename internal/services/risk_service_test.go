package services_test

import (
	"testing"

	"diacheck/internal/models"
	"diacheck/internal/services"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func riskInput(glucose, bp, skin, insulin, bmi, pedigree float64, age int) *models.RiskInput {
	return &models.RiskInput{
		Glucose:          floatPtr(glucose),
		BloodPressure:    floatPtr(bp),
		SkinThickness:    floatPtr(skin),
		Insulin:          floatPtr(insulin),
		BMI:              floatPtr(bmi),
		DiabetesPedigree: floatPtr(pedigree),
		Age:              intPtr(age),
	}
}

func TestRiskService_Assess_HighRisk(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	// glucose:150(+2) bp:130(+1) bmi:32(+2) age:50(+2) insulin:30(+1)
	// pedigree:1.6(+2) = 10
	input := riskInput(150, 130, 20, 30, 32, 1.6, 50)
	input.Pregnancies = intPtr(2)

	result, err := riskService.Assess(input)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.RiskScore)
	assert.Equal(t, 1.0, result.Probability)
	assert.True(t, result.Prediction)
	assert.Equal(t, models.SourceHeuristic, result.Source)
}

func TestRiskService_Assess_LowRisk(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	result, err := riskService.Assess(riskInput(90, 80, 15, 10, 22, 0.3, 20))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, 0.0, result.Probability)
	assert.False(t, result.Prediction)
}

func TestRiskService_Assess_MaxScoreClamped(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	// Every rule at its top band: 2+2+2+2+1+2 = 11, probability clamps to 1.
	result, err := riskService.Assess(riskInput(200, 160, 40, 50, 40, 2.0, 60))
	assert.NoError(t, err)
	assert.Equal(t, 11, result.RiskScore)
	assert.Equal(t, 1.0, result.Probability)
	assert.True(t, result.Prediction)
}

func TestRiskService_Assess_Boundaries(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	// Thresholds are strict: values exactly at a boundary score the lower band.
	// glucose 140 is not >140 so it scores the +1 band; every other value
	// sits exactly on its threshold and scores 0.
	result, err := riskService.Assess(riskInput(140, 120, 20, 25, 25, 0.8, 35))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RiskScore)

	// Just above each mid threshold.
	result, err = riskService.Assess(riskInput(101, 121, 20, 26, 25.1, 0.81, 36))
	assert.NoError(t, err)
	assert.Equal(t, 6, result.RiskScore)
}

func TestRiskService_Assess_PredictionMatchesProbability(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	for _, glucose := range []float64{80, 110, 150} {
		for _, age := range []int{20, 40, 60} {
			for _, bmi := range []float64{20, 27, 35} {
				result, err := riskService.Assess(riskInput(glucose, 100, 20, 10, bmi, 0.5, age))
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, result.Probability, 0.0)
				assert.LessOrEqual(t, result.Probability, 1.0)
				assert.Equal(t, result.Probability > 0.5, result.Prediction)
			}
		}
	}
}

func TestRiskService_Assess_MissingFields(t *testing.T) {
	riskService := services.NewRiskService(nil, nil)

	// Pregnancies alone is optional.
	input := riskInput(90, 80, 15, 10, 22, 0.3, 20)
	input.Pregnancies = nil
	_, err := riskService.Assess(input)
	assert.NoError(t, err)

	// Any required field missing fails validation.
	input = riskInput(90, 80, 15, 10, 22, 0.3, 20)
	input.Glucose = nil
	input.Age = nil
	_, err = riskService.Assess(input)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "glucose")
	assert.Contains(t, err.Error(), "age")
}
