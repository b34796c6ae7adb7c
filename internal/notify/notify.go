package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/rfedorina/dining-recommendations/internal/recommend"
)

// Delivery is the external push-delivery collaborator. It reports success as
// a boolean and never propagates transport errors upward.
type Delivery interface {
	Push(ctx context.Context, userID, title, body string, payload map[string]string) bool
}

// Recommender is the slice of the aggregator the trigger needs.
type Recommender interface {
	Generate(ctx context.Context, userID, mealType string, maxDistanceMeters float64, limit int) ([]recommend.Recommendation, error)
}

// Trigger picks the top recommendation for a user and hands it to the
// delivery collaborator.
type Trigger struct {
	recommender  Recommender
	delivery     Delivery
	radiusMeters float64
}

// NewTrigger builds a notification trigger searching within radiusMeters.
func NewTrigger(recommender Recommender, delivery Delivery, radiusMeters float64) *Trigger {
	return &Trigger{
		recommender:  recommender,
		delivery:     delivery,
		radiusMeters: radiusMeters,
	}
}

// Send notifies the user about the single best venue for the meal type.
// An empty recommendation set returns false without contacting delivery; that
// is the expected nothing-to-notify outcome. Only aggregator infrastructure
// faults return an error.
func (t *Trigger) Send(ctx context.Context, userID, mealType string) (bool, error) {
	recs, err := t.recommender.Generate(ctx, userID, mealType, t.radiusMeters, 1)
	if err != nil {
		return false, fmt.Errorf("generate top recommendation: %w", err)
	}
	if len(recs) == 0 {
		log.Printf("notify: nothing to suggest for user %s (%s)", userID, mealType)
		return false, nil
	}

	top := recs[0]
	title := fmt.Sprintf("Time for %s?", mealType)
	body := fmt.Sprintf("%s is %dm away. %s.", top.Name, int(top.DistanceMeters), top.Reason)

	payload := map[string]string{
		"mealType":    mealType,
		"sourceKind":  string(top.Source),
		"referenceId": top.ReferenceID,
	}

	return t.delivery.Push(ctx, userID, title, body, payload), nil
}
