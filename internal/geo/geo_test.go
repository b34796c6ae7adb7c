package geo

import (
	"math"
	"testing"
)

func TestDistanceMetersZero(t *testing.T) {
	p := Coordinate{Lat: 49.2827, Lng: -123.1207}
	if d := DistanceMeters(p, p); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistanceMetersKnownPair(t *testing.T) {
	// Vancouver downtown to Stanley Park, roughly 2.7km.
	a := Coordinate{Lat: 49.2827, Lng: -123.1207}
	b := Coordinate{Lat: 49.3043, Lng: -123.1443}

	d := DistanceMeters(a, b)
	if d < 2500 || d > 3500 {
		t.Fatalf("expected distance near 2.9km, got %f", d)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := Coordinate{Lat: 48.8566, Lng: 2.3522}
	b := Coordinate{Lat: 48.8606, Lng: 2.3376}

	if d1, d2 := DistanceMeters(a, b), DistanceMeters(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}
