package geo

import (
	"math"
	"testing"
)

func TestHaversine_ZeroDistance(t *testing.T) {
	if d := Haversine(-6.2, 106.8, -6.2, 106.8); d != 0 {
		t.Errorf("Haversine(same point) = %f, want 0", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(-6.2, 106.8, -6.3, 106.9)
	d2 := Haversine(-6.3, 106.9, -6.2, 106.8)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Haversine not symmetric: %f vs %f", d1, d2)
	}
}

func TestHaversine_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is roughly 111.2 km on a 6371 km sphere.
	d := Haversine(0, 0, 1, 0)
	want := 111195.0
	if math.Abs(d-want) > 100 {
		t.Errorf("Haversine(1 degree lat) = %f, want ~%f", d, want)
	}
}

func TestWithinAnyZone(t *testing.T) {
	centers := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 10},
	}

	cases := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"at first center", 0, 0, true},
		{"about 55m north", 0.0005, 0, true},
		{"about 167m north", 0.0015, 0, false},
		{"near second center", 10.0005, 10, true},
		{"nowhere near", 45, 45, false},
	}
	for _, c := range cases {
		got := WithinAnyZone(c.lat, c.lon, centers, 100)
		if got != c.want {
			t.Errorf("%s: WithinAnyZone(%f, %f) = %v, want %v", c.name, c.lat, c.lon, got, c.want)
		}
	}
}

func TestWithinAnyZone_NoCenters(t *testing.T) {
	if WithinAnyZone(0, 0, nil, 100) {
		t.Error("WithinAnyZone with no centers = true, want false")
	}
}
