package userdata

import (
	"context"
	"reflect"
	"testing"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

func TestMemoryStoreResolve(t *testing.T) {
	store := NewMemoryStore()

	coord, err := store.Resolve(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord != nil {
		t.Fatal("expected nil coordinate for unknown user")
	}

	want := geo.Coordinate{Lat: 49.2827, Lng: -123.1207}
	store.SetLocation("u1", want)

	coord, err = store.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord == nil || *coord != want {
		t.Fatalf("expected %+v, got %+v", want, coord)
	}
}

func TestMemoryStoreUsersWithLocationSorted(t *testing.T) {
	store := NewMemoryStore()
	store.SetLocation("zoe", geo.Coordinate{})
	store.SetLocation("amy", geo.Coordinate{})

	users, err := store.UsersWithLocation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(users, []string{"amy", "zoe"}) {
		t.Fatalf("expected sorted user list, got %v", users)
	}
}

func TestMemoryStoreCategoryAffinity(t *testing.T) {
	store := NewMemoryStore()

	affinity, err := store.CategoryAffinity(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(affinity) != 0 {
		t.Fatalf("expected empty affinity for no history, got %v", affinity)
	}

	store.SetAffinity("u1", "cafe", 0.9)
	affinity, err = store.CategoryAffinity(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affinity["cafe"] != 0.9 {
		t.Fatalf("expected cafe affinity 0.9, got %v", affinity)
	}
}
