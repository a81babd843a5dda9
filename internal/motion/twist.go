// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"fmt"
	"time"
)

// Vector3 is a velocity component in the robot base frame.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Twist is a velocity command for the base: linear.x drives forward,
// angular.z turns counter-clockwise.
type Twist struct {
	Linear  Vector3 `json:"linear"`
	Angular Vector3 `json:"angular"`
}

// IsZero reports whether the command asks the base to stop.
func (t Twist) IsZero() bool {
	return t == Twist{}
}

// Phase names the step the controller is in.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseRotate    Phase = "rotate"
	PhaseTranslate Phase = "translate"
	PhaseDone      Phase = "done"
)

// Progress is a snapshot of a running phase, reported once per tick.
type Progress struct {
	Phase    Phase     `json:"phase"`
	Target   float64   `json:"target"`   // requested magnitude (rad or distance)
	Measured float64   `json:"measured"` // displacement from the reference pose
	Done     bool      `json:"done"`
	Time     time.Time `json:"time"`
}

func (p Progress) String() string {
	switch p.Phase {
	case PhaseRotate:
		return fmt.Sprintf("rotate %.1f/%.1f deg", ToDegree(p.Measured), ToDegree(p.Target))
	case PhaseTranslate:
		return fmt.Sprintf("translate %.3f/%.3f", p.Measured, p.Target)
	default:
		return string(p.Phase)
	}
}
