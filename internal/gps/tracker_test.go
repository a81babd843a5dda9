// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"math"
	"testing"

	nmea "github.com/adrianmo/go-nmea"
)

const (
	ggaOrigin = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
	rmcOrigin = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"
	ggaEast   = "$GPGGA,123520,4807.038,N,01131.100,E,1,08,0.9,546.4,M,46.9,M,,*4F"
	rmcEast   = "$GPRMC,123520,A,4807.038,N,01131.100,E,022.4,090.0,230394,003.1,W*60"
	rmcVoid   = "$GPRMC,123521,V,4807.038,N,01131.100,E,022.4,090.0,230394,003.1,W*76"
	ggaNoFix  = "$GPGGA,123522,4807.038,N,01131.100,E,0,00,,,M,,M,,*5B"
)

func parse(t *testing.T, line string) nmea.Sentence {
	t.Helper()
	s, err := nmea.Parse(line)
	if err != nil {
		t.Fatalf("nmea.Parse(%q): %v", line, err)
	}
	return s
}

func TestTracker_FirstFixIsOrigin(t *testing.T) {
	tr := NewTracker(0.1)

	if _, _, ok := tr.Feed(parse(t, ggaOrigin)); ok {
		t.Fatal("Expected GGA alone not to produce a pose")
	}

	p, fix, ok := tr.Feed(parse(t, rmcOrigin))
	if !ok {
		t.Fatal("Expected valid RMC to produce a pose")
	}
	if fix.Altitude != 545.4 {
		t.Errorf("Expected altitude from GGA, got %v", fix.Altitude)
	}
	if p.Position.X != 0 || p.Position.Y != 0 {
		t.Errorf("Expected origin at (0, 0), got %+v", p.Position)
	}
	if math.Abs(p.Position.Z-0.1) > 1e-9 {
		t.Errorf("Expected z = antenna height, got %v", p.Position.Z)
	}

	wantYaw := math.Pi/2 - 84.4*math.Pi/180
	if math.Abs(p.Orientation.Yaw()-wantYaw) > 1e-9 {
		t.Errorf("Expected yaw %v from course, got %v", wantYaw, p.Orientation.Yaw())
	}
}

func TestTracker_ProjectsEast(t *testing.T) {
	tr := NewTracker(0.1)
	tr.Feed(parse(t, ggaOrigin))
	tr.Feed(parse(t, rmcOrigin))
	tr.Feed(parse(t, ggaEast))

	p, _, ok := tr.Feed(parse(t, rmcEast))
	if !ok {
		t.Fatal("Expected valid RMC to produce a pose")
	}

	lat := (48 + 7.038/60) * math.Pi / 180
	wantX := (0.1 / 60) * math.Pi / 180 * math.Cos(lat) * earthRadius
	if math.Abs(p.Position.X-wantX) > 1e-6 {
		t.Errorf("Expected x = %v, got %v", wantX, p.Position.X)
	}
	if math.Abs(p.Position.Y) > 1e-6 {
		t.Errorf("Expected no northward motion, got %v", p.Position.Y)
	}
	if math.Abs(p.Position.Z-1.1) > 1e-9 {
		t.Errorf("Expected z 1.1 after climbing 1 m, got %v", p.Position.Z)
	}
	if math.Abs(p.Orientation.Yaw()) > 1e-9 {
		t.Errorf("Expected course 090 to map to yaw 0, got %v", p.Orientation.Yaw())
	}
}

func TestTracker_IgnoresVoidAndNoFix(t *testing.T) {
	tr := NewTracker(0.1)
	tr.Feed(parse(t, ggaOrigin))
	tr.Feed(parse(t, rmcOrigin))

	if _, fix, ok := tr.Feed(parse(t, rmcVoid)); ok || fix.Validity != "V" {
		t.Errorf("Expected void RMC to be reported but not produce a pose (ok=%v validity=%q)", ok, fix.Validity)
	}

	tr.Feed(parse(t, ggaNoFix))
	_, fix, _ := tr.Feed(parse(t, rmcEast))
	if fix.Altitude != 545.4 {
		t.Errorf("Expected altitude from invalid GGA to be ignored, got %v", fix.Altitude)
	}
}

func TestLocalFrame_Anchored(t *testing.T) {
	var f LocalFrame
	if f.Anchored() {
		t.Fatal("Expected new frame to be unanchored")
	}
	f.Project(Fix{Latitude: 10, Longitude: 20})
	if !f.Anchored() {
		t.Error("Expected frame anchored after first projection")
	}

	p := f.Project(Fix{Latitude: 10 + 1.0/60, Longitude: 20})
	want := (1.0 / 60) * math.Pi / 180 * earthRadius
	if math.Abs(p.Position.Y-want) > 1e-6 {
		t.Errorf("Expected one arc-minute north to be %v m, got %v", want, p.Position.Y)
	}
}
