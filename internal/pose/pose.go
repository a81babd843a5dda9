// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package pose

import "math"

// Point is a position in the odometry frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is an orientation in the odometry frame (x, y, z, w order, like the wire format).
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is the canonical odometry sample: position plus orientation.
// A new sample always replaces the previous one wholesale.
type Pose struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// Identity returns the quaternion for "no rotation".
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// FromYaw builds a rotation of yaw radians about +Z.
func FromYaw(yaw float64) Quaternion {
	half := yaw / 2
	return Quaternion{Z: math.Sin(half), W: math.Cos(half)}
}

// Yaw extracts the heading (rotation about +Z) in radians, range (-π, π].
func (q Quaternion) Yaw() float64 {
	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	return math.Atan2(sinyCosp, cosyCosp)
}

// New is a shorthand for a planar pose at height z with the given heading.
func New(x, y, z, yaw float64) Pose {
	return Pose{
		Position:    Point{X: x, Y: y, Z: z},
		Orientation: FromYaw(yaw),
	}
}
