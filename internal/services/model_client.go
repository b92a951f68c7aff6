package services

import (
	"encoding/json"
	"fmt"

	"diacheck/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ModelClient forwards feature vectors to the external prediction service.
type ModelClient struct {
	baseURL string
}

// NewModelClient creates a client for the model service at baseURL.
func NewModelClient(baseURL string) *ModelClient {
	return &ModelClient{
		baseURL: baseURL,
	}
}

type modelRequest struct {
	Data [][]float64 `json:"data"`
}

type modelResponse struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Status      string  `json:"status"`
	Message     string  `json:"message"`
}

// Predict sends the 8-element feature vector to the model service and
// returns its prediction and probability. The risk score is not part of
// the model's response and is left zero for the caller to fill in.
func (c *ModelClient) Predict(features []float64) (*models.RiskAssessment, error) {
	agent := fiber.Post(c.baseURL + "/predict")
	agent.JSON(modelRequest{Data: [][]float64{features}})

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("model service request failed: %v", errs[0])
	}

	var resp modelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if status != fiber.StatusOK || resp.Status != "success" {
		return nil, fmt.Errorf("model service returned status %d: %s", status, resp.Message)
	}

	return &models.RiskAssessment{
		Prediction:  resp.Prediction == 1,
		Probability: resp.Probability,
		Source:      models.SourceModel,
	}, nil
}
