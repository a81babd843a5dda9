// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sim

import (
	"time"

	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// Loopback connects a controller straight to a simulated robot with no
// broker in between. Publish drives the robot, Pump advances it by one step
// and writes the resulting odometry into the store.
type Loopback struct {
	robot *Robot
	store *pose.Store
	step  time.Duration
	sent  []motion.Twist
}

// NewLoopback advances robot by step on every Pump. Use the controller tick
// for a real-time simulation.
func NewLoopback(robot *Robot, store *pose.Store, step time.Duration) *Loopback {
	return &Loopback{robot: robot, store: store, step: step}
}

func (l *Loopback) Pump() {
	l.store.Write(l.robot.Step(l.step.Seconds()))
}

func (l *Loopback) Publish(cmd motion.Twist) error {
	l.sent = append(l.sent, cmd)
	l.robot.Command(cmd)
	return nil
}

// Sent returns every command published so far.
func (l *Loopback) Sent() []motion.Twist {
	return l.sent
}
