// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import "math"

// ToRadian converts degrees to radians.
func ToRadian(degree float64) float64 {
	return degree * (math.Pi / 180.0)
}

// ToDegree converts radians to degrees.
func ToDegree(radian float64) float64 {
	return radian * (180.0 / math.Pi)
}
