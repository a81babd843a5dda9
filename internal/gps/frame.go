// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"math"

	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// earthRadius is the mean Earth radius in metres.
const earthRadius = 6371000.0

// LocalFrame projects fixes onto a flat east-north-up frame anchored at the
// first fix it sees. The equirectangular approximation is good to a few
// centimetres over the tens of metres a single move covers.
type LocalFrame struct {
	// AntennaHeight is added to z so a robot sitting at the origin altitude
	// still reports a non-zero height.
	AntennaHeight float64

	originLat float64
	originLon float64
	originAlt float64
	cosLat    float64
	anchored  bool
}

// Project converts fix to a pose. x is metres east, y metres north, z metres
// up; yaw is counter-clockwise from east, derived from course over ground.
// Course over ground only changes while the antenna travels, so turning in
// place leaves yaw where it was and a mover rotation fed by these poses never
// completes.
func (f *LocalFrame) Project(fix Fix) pose.Pose {
	if !f.anchored {
		f.originLat = fix.Latitude
		f.originLon = fix.Longitude
		f.originAlt = fix.Altitude
		f.cosLat = math.Cos(toRad(fix.Latitude))
		f.anchored = true
	}

	x := toRad(fix.Longitude-f.originLon) * f.cosLat * earthRadius
	y := toRad(fix.Latitude-f.originLat) * earthRadius
	z := fix.Altitude - f.originAlt + f.AntennaHeight
	yaw := math.Pi/2 - toRad(fix.CourseDeg)

	return pose.New(x, y, z, yaw)
}

// Anchored reports whether the origin has been fixed.
func (f *LocalFrame) Anchored() bool {
	return f.anchored
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
