package httpapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rfedorina/dining-recommendations/internal/recommend"
)

var validate = validator.New()

const invalidMealTypeMsg = "Invalid meal type. Must be breakfast, lunch, or dinner"

// ErrorHandler is the centralized Fiber error handler: every error becomes a
// structurally valid JSON response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// Recommender is the aggregator contract the HTTP layer consumes.
type Recommender interface {
	Generate(ctx context.Context, userID, mealType string, maxDistanceMeters float64, limit int) ([]recommend.Recommendation, error)
}

// Notifier is the notification-trigger contract.
type Notifier interface {
	Send(ctx context.Context, userID, mealType string) (bool, error)
}

// Defaults supplies per-request fallbacks for optional query parameters.
type Defaults struct {
	MaxDistanceMeters float64
	Limit             int
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Authentication
// is delegated to an upstream collaborator that injects X-User-ID.
func RegisterRoutes(app *fiber.App, rec Recommender, notifier Notifier, defaults Defaults) {
	app.Get("/recommendations/:mealType", func(c *fiber.Ctx) error {
		mealType := c.Params("mealType")
		if !recommend.ValidMealType(mealType) {
			return fiber.NewError(fiber.StatusBadRequest, invalidMealTypeMsg)
		}

		userID, err := requireUser(c)
		if err != nil {
			return err
		}

		req, err := parseRecommendationQuery(c, defaults)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		recs, err := rec.Generate(c.Context(), userID, mealType, req.MaxDistance, req.Limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate recommendations")
		}

		return c.JSON(fiber.Map{
			"message": "Recommendations generated",
			"data": fiber.Map{
				"mealType":        mealType,
				"count":           len(recs),
				"recommendations": recs,
			},
		})
	})

	app.Post("/recommendations/notify/:mealType", func(c *fiber.Ctx) error {
		mealType := c.Params("mealType")
		if !recommend.ValidMealType(mealType) {
			return fiber.NewError(fiber.StatusBadRequest, invalidMealTypeMsg)
		}

		userID, err := requireUser(c)
		if err != nil {
			return err
		}

		sent, err := notifier.Send(c.Context(), userID, mealType)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to send notification")
		}

		if !sent {
			// Nothing to notify: expected outcome, not an error.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(fiber.Map{"sent": true})
	})
}

func requireUser(c *fiber.Ctx) (string, error) {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "missing X-User-ID header")
	}
	return userID, nil
}

// recommendationQuery holds optional query parameters for the list endpoint.
type recommendationQuery struct {
	MaxDistance float64 `validate:"gt=0,lte=50000"`
	Limit       int     `validate:"lte=50"`
}

func parseRecommendationQuery(c *fiber.Ctx, defaults Defaults) (recommendationQuery, error) {
	q := recommendationQuery{
		MaxDistance: defaults.MaxDistanceMeters,
		Limit:       defaults.Limit,
	}

	if raw := c.Query("maxDistance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, fmt.Errorf("invalid maxDistance %q", raw)
		}
		q.MaxDistance = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = v
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
