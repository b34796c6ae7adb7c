package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rfedorina/dining-recommendations/internal/recommend"
)

type stubRecommender struct {
	recs []recommend.Recommendation
	err  error
}

func (s stubRecommender) Generate(context.Context, string, string, float64, int) ([]recommend.Recommendation, error) {
	return s.recs, s.err
}

type spyDelivery struct {
	called bool
	title  string
	body   string
	result bool
}

func (s *spyDelivery) Push(_ context.Context, _, title, body string, _ map[string]string) bool {
	s.called = true
	s.title = title
	s.body = body
	return s.result
}

func TestSendNothingToNotify(t *testing.T) {
	delivery := &spyDelivery{result: true}
	trigger := NewTrigger(stubRecommender{}, delivery, 2000)

	sent, err := trigger.Send(context.Background(), "u1", "dinner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Fatal("expected sent=false when there is nothing to notify")
	}
	if delivery.called {
		t.Fatal("delivery must not be contacted when no recommendations exist")
	}
}

func TestSendPropagatesAggregatorFault(t *testing.T) {
	trigger := NewTrigger(stubRecommender{err: errors.New("storage down")}, &spyDelivery{}, 2000)

	if _, err := trigger.Send(context.Background(), "u1", "lunch"); err == nil {
		t.Fatal("expected aggregator fault to propagate")
	}
}

func TestSendBuildsMessageFromTopResult(t *testing.T) {
	delivery := &spyDelivery{result: true}
	trigger := NewTrigger(stubRecommender{recs: []recommend.Recommendation{{
		Source:         recommend.SourceInternal,
		ReferenceID:    "v1",
		Name:           "Morning Brew Cafe",
		DistanceMeters: 50,
		Reason:         "Close by and great for breakfast",
	}}}, delivery, 2000)

	sent, err := trigger.Send(context.Background(), "u1", "breakfast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sent {
		t.Fatal("expected sent=true when delivery succeeds")
	}
	if !strings.Contains(delivery.title, "breakfast") {
		t.Fatalf("title should mention the meal, got %q", delivery.title)
	}
	if !strings.Contains(delivery.body, "Morning Brew Cafe") || !strings.Contains(delivery.body, "50m") {
		t.Fatalf("body should mention the venue and distance, got %q", delivery.body)
	}
}

func TestSendReturnsDeliveryResult(t *testing.T) {
	delivery := &spyDelivery{result: false}
	trigger := NewTrigger(stubRecommender{recs: []recommend.Recommendation{{Name: "Spot"}}}, delivery, 2000)

	sent, err := trigger.Send(context.Background(), "u1", "dinner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Fatal("expected sent=false when the delivery collaborator reports failure")
	}
}

func TestWebhookDeliveryWithoutEndpoint(t *testing.T) {
	d := NewWebhookDelivery(nil, "")
	if d.Push(context.Background(), "u1", "t", "b", nil) {
		t.Fatal("missing endpoint must report failure, not panic")
	}
}

func TestWebhookDeliveryPostsJSON(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewWebhookDelivery(srv.Client(), srv.URL)
	if !d.Push(context.Background(), "u1", "title", "body", map[string]string{"mealType": "lunch"}) {
		t.Fatal("expected push to succeed against a 200 endpoint")
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
}

func TestWebhookDeliveryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewWebhookDelivery(srv.Client(), srv.URL)
	if d.Push(context.Background(), "u1", "title", "body", nil) {
		t.Fatal("expected push to report failure on 5xx")
	}
}
