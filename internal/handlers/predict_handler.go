package handlers

import (
	"errors"
	"log"

	"diacheck/internal/models"
	"diacheck/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PredictHandler handles HTTP requests for risk assessments.
type PredictHandler struct {
	riskService *services.RiskService
}

// NewPredictHandler creates a new PredictHandler.
func NewPredictHandler(riskService *services.RiskService) *PredictHandler {
	return &PredictHandler{
		riskService: riskService,
	}
}

// RegisterRoutes registers the prediction route. The router is expected to
// be guarded by the login middleware.
func (h *PredictHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/predict", h.HandlePredict)
}

// HandlePredict computes a risk assessment from the posted measurements.
func (h *PredictHandler) HandlePredict(c *fiber.Ctx) error {
	var input models.RiskInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing predict request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.riskService.Assess(&input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error computing assessment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Prediction failed. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"status":      "success",
		"prediction":  result.Prediction,
		"probability": result.Probability,
		"riskScore":   result.RiskScore,
		"source":      result.Source,
	})
}
