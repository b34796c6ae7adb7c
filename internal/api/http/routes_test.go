package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/rfedorina/dining-recommendations/internal/recommend"
)

type stubRecommender struct {
	recs []recommend.Recommendation
	err  error
}

func (s stubRecommender) Generate(context.Context, string, string, float64, int) ([]recommend.Recommendation, error) {
	return s.recs, s.err
}

type stubNotifier struct {
	sent bool
	err  error
}

func (s stubNotifier) Send(context.Context, string, string) (bool, error) {
	return s.sent, s.err
}

func newTestApp(rec Recommender, n Notifier) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, rec, n, Defaults{MaxDistanceMeters: 2000, Limit: 10})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, withUser bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if withUser {
		req.Header.Set("X-User-ID", "u1")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestRecommendationsInvalidMealType(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{})

	for _, meal := range []string{"brunch", "snack", "BREAKFAST"} {
		resp := doRequest(t, app, http.MethodGet, "/recommendations/"+meal, true)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("meal %q: expected 400, got %d", meal, resp.StatusCode)
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Message != invalidMealTypeMsg {
			t.Fatalf("expected fixed message, got %q", body.Message)
		}
	}
}

func TestRecommendationsMissingUserHeader(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{})

	resp := doRequest(t, app, http.MethodGet, "/recommendations/lunch", false)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without user header, got %d", resp.StatusCode)
	}
}

func TestRecommendationsEmptyResultIsSuccess(t *testing.T) {
	app := newTestApp(stubRecommender{recs: []recommend.Recommendation{}}, stubNotifier{})

	resp := doRequest(t, app, http.MethodGet, "/recommendations/breakfast", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for empty result, got %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			MealType string `json:"mealType"`
			Count    int    `json:"count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Count != 0 || body.Data.MealType != "breakfast" {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}

func TestRecommendationsPayload(t *testing.T) {
	app := newTestApp(stubRecommender{recs: []recommend.Recommendation{{
		Source:         recommend.SourceInternal,
		ReferenceID:    "v1",
		Name:           "Morning Brew Cafe",
		DistanceMeters: 50,
		Score:          71.5,
	}}}, stubNotifier{})

	resp := doRequest(t, app, http.MethodGet, "/recommendations/breakfast?limit=5&maxDistance=1000", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Count           int                        `json:"count"`
			Recommendations []recommend.Recommendation `json:"recommendations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Count != 1 || body.Data.Recommendations[0].ReferenceID != "v1" {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}

func TestRecommendationsInternalError(t *testing.T) {
	app := newTestApp(stubRecommender{err: errors.New("storage down")}, stubNotifier{})

	resp := doRequest(t, app, http.MethodGet, "/recommendations/dinner", true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestRecommendationsRejectsBadQueryParams(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{})

	for _, target := range []string{
		"/recommendations/lunch?maxDistance=-5",
		"/recommendations/lunch?maxDistance=99999999",
		"/recommendations/lunch?limit=200",
		"/recommendations/lunch?maxDistance=abc",
	} {
		resp := doRequest(t, app, http.MethodGet, target, true)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestNotifySent(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{sent: true})

	resp := doRequest(t, app, http.MethodPost, "/recommendations/notify/dinner", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Sent bool `json:"sent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Sent {
		t.Fatal("expected sent=true")
	}
}

func TestNotifyNothingToSend(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{sent: false})

	resp := doRequest(t, app, http.MethodPost, "/recommendations/notify/breakfast", true)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestNotifyInvalidMealType(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{sent: true})

	resp := doRequest(t, app, http.MethodPost, "/recommendations/notify/teatime", true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestNotifyInternalError(t *testing.T) {
	app := newTestApp(stubRecommender{}, stubNotifier{err: errors.New("storage down")})

	resp := doRequest(t, app, http.MethodPost, "/recommendations/notify/lunch", true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
