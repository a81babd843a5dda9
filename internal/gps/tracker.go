// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// Tracker accumulates NMEA sentences into fixes and local-frame poses.
type Tracker struct {
	frame   LocalFrame
	current Fix
}

// NewTracker returns a tracker whose poses include antennaHeight in z.
func NewTracker(antennaHeight float64) *Tracker {
	return &Tracker{frame: LocalFrame{AntennaHeight: antennaHeight}}
}

// Feed consumes one sentence. A valid RMC completes a fix and yields a pose;
// GGA only refreshes the altitude used by the next RMC. Other sentence types
// are ignored.
func (t *Tracker) Feed(sentence nmea.Sentence) (pose.Pose, Fix, bool) {
	switch sentence.DataType() {
	case nmea.TypeGGA:
		m := sentence.(nmea.GGA)
		if m.FixQuality != nmea.Invalid {
			t.current.Altitude = m.Altitude
		}

	case nmea.TypeRMC:
		m := sentence.(nmea.RMC)

		t.current.Time = m.Time.String()
		t.current.Date = m.Date.String()
		t.current.Latitude = m.Latitude
		t.current.Longitude = m.Longitude
		t.current.SpeedKnots = m.Speed
		t.current.CourseDeg = m.Course
		t.current.Validity = string(m.Validity)

		if m.Validity != nmea.ValidRMC {
			return pose.Pose{}, t.current, false
		}
		return t.frame.Project(t.current), t.current, true
	}

	return pose.Pose{}, t.current, false
}
