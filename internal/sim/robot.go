// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sim simulates a differential-drive base that follows velocity
// commands and reports its odometry.
package sim

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// Robot integrates the latched velocity command into a planar pose.
// It is safe for concurrent use.
type Robot struct {
	mu       sync.Mutex
	position r3.Vector
	yaw      float64
	cmd      motion.Twist
}

// NewRobot places a robot at start; only the heading of start's orientation is kept.
func NewRobot(start pose.Pose) *Robot {
	return &Robot{
		position: r3.Vector{X: start.Position.X, Y: start.Position.Y, Z: start.Position.Z},
		yaw:      start.Orientation.Yaw(),
	}
}

// Command latches cmd until the next call. Only linear.x and angular.z move a differential base.
func (r *Robot) Command(cmd motion.Twist) {
	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()
}

// Step advances the robot by dt seconds and returns the new pose.
func (r *Robot) Step(dt float64) pose.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.cmd.Linear.X
	heading := r3.Vector{X: math.Cos(r.yaw), Y: math.Sin(r.yaw)}
	r.position = r.position.Add(heading.Mul(v * dt))
	r.yaw = wrap(r.yaw + r.cmd.Angular.Z*dt)

	return r.poseLocked()
}

// Pose returns the current pose without advancing time.
func (r *Robot) Pose() pose.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.poseLocked()
}

func (r *Robot) poseLocked() pose.Pose {
	return pose.Pose{
		Position:    pose.Point{X: r.position.X, Y: r.position.Y, Z: r.position.Z},
		Orientation: pose.FromYaw(r.yaw),
	}
}

// wrap keeps yaw in (-π, π].
func wrap(yaw float64) float64 {
	for yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw <= -math.Pi {
		yaw += 2 * math.Pi
	}
	return yaw
}
