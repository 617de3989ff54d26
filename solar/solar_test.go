package solar

import (
	"math"
	"testing"
	"time"
)

func TestDeclinationStaysPhysical(t *testing.T) {
	// Walk two years in 13h steps so every season and time of day is hit.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1350; i++ {
		at := start.Add(time.Duration(i) * 13 * time.Hour)
		d := DeclinationAt(at)
		if d < -MaxDeclinationDeg || d > MaxDeclinationDeg {
			t.Fatalf("declination %f out of range at %s", d, at)
		}
	}
}

func TestDeclinationContinuousAcrossDayBoundary(t *testing.T) {
	boundaries := []time.Time{
		time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 6, 20, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, b := range boundaries {
		before := DeclinationAt(b)
		after := DeclinationAt(b.Add(2 * time.Second))
		if math.Abs(after-before) > 0.01 {
			t.Errorf("declination jumps %f -> %f across %s", before, after, b)
		}
	}
}

func TestJuneSolsticeDeclination(t *testing.T) {
	// 2024 solstice: June 20, ~20:51 UTC.
	d := DeclinationAt(time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC))
	if d < 23.3 || d > MaxDeclinationDeg {
		t.Fatalf("June solstice declination = %f, want ≈ +23.4", d)
	}
}

func TestSubsolarLongitudeNearZeroAtUTCNoon(t *testing.T) {
	// The equation of time moves solar noon by at most ~±4°.
	for month := time.January; month <= time.December; month++ {
		at := time.Date(2024, month, 15, 12, 0, 0, 0, time.UTC)
		lng := SubsolarLongitude(at)
		if math.Abs(lng) > 5.0 {
			t.Errorf("subsolar longitude at UTC noon %s = %f, want within ±5°", at, lng)
		}
	}
}

func TestDirectionECEFMatchesPosition(t *testing.T) {
	at := time.Date(2024, 9, 1, 6, 30, 0, 0, time.UTC)
	p := PositionAt(at)
	dir := DirectionECEF(at)

	if math.Abs(dir.Norm()-1.0) > 1e-12 {
		t.Fatalf("direction not unit length: %f", dir.Norm())
	}

	lat := math.Asin(dir.Z) * 180.0 / math.Pi
	lng := math.Atan2(dir.Y, dir.X) * 180.0 / math.Pi
	if math.Abs(lat-p.DeclinationDeg) > 0.01 {
		t.Errorf("ECEF latitude %f != declination %f", lat, p.DeclinationDeg)
	}
	if math.Abs(NormalizeLng(lng-p.LongitudeDeg)) > 0.01 {
		t.Errorf("ECEF longitude %f != subsolar longitude %f", lng, p.LongitudeDeg)
	}
}

func TestPositionAtDeterministic(t *testing.T) {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	if PositionAt(at) != PositionAt(at) {
		t.Fatal("PositionAt is not deterministic")
	}
}

func TestNormalizeLng(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{10, 10},
		{-10, -10},
		{180, 180},
		{-180, 180},
		{180.5, -179.5},
		{190, -170},
		{-190, 170},
		{360, 0},
		{-360, 0},
		{540, 180},
		{720, 0},
		{-540, 180},
		{123456.7, NormalizeLng(123456.7)}, // self-consistency below
	}
	for _, c := range cases {
		got := NormalizeLng(c.in)
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeLng(%f) = %f outside (-180, 180]", c.in, got)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeLng(%f) = %f, want %f", c.in, got, c.want)
		}
		// Same physical bearing modulo 360.
		diff := math.Mod(c.in-got, 360.0)
		if math.Abs(diff) > 1e-9 && math.Abs(math.Abs(diff)-360.0) > 1e-9 {
			t.Errorf("NormalizeLng(%f) = %f is not the same bearing", c.in, got)
		}
	}
}
