// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package transform computes how far a robot has moved between two odometry poses.
package transform

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// Displacement is the motion from a reference pose to a current pose,
// expressed in the reference frame.
type Displacement struct {
	Angle    float64 // radians, shortest arc, [0, π]
	Distance float64 // length of the relative translation
}

// Relative composes inverse(reference) * current and extracts the rotation
// angle and translation length of the result. Equal orientations, q and q or
// q and -q, give an angle of exactly zero.
func Relative(reference, current pose.Pose) Displacement {
	ref := toQuat(reference.Orientation)
	cur := toQuat(current.Orientation)
	inv := quat.Conj(ref)

	var angle float64
	if cur != ref && cur != quat.Scale(-1, ref) {
		angle = Angle(quat.Mul(inv, cur))
	}

	delta := toVector(current.Position).Sub(toVector(reference.Position))

	return Displacement{
		Angle:    angle,
		Distance: Rotate(inv, delta).Norm(),
	}
}

// Angle returns the rotation angle of a unit quaternion on the shortest arc.
//
// atan2 of the vector norm against |w| stays accurate near identity, where
// acos(w) loses precision, and |w| makes q and -q give the same answer.
func Angle(q quat.Number) float64 {
	v := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	return 2 * math.Atan2(v, math.Abs(q.Real))
}

// Rotate applies the unit quaternion q to v (q * v * q⁻¹).
func Rotate(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// toQuat converts a wire quaternion to a unit gonum quaternion. Feeds that
// have not initialised their orientation send all zeros; treat that as identity.
func toQuat(q pose.Quaternion) quat.Number {
	n := quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
	norm := quat.Abs(n)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return quat.Number{Real: 1}
	}
	if norm == 1 {
		return n
	}
	return quat.Scale(1/norm, n)
}

func toVector(p pose.Point) r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}
