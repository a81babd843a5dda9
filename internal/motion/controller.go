// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package motion drives a wheeled base through one rotation and one
// translation, closing the loop on odometry.
package motion

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/relabs-tech/odometry_mover/internal/pose"
	"github.com/relabs-tech/odometry_mover/internal/transform"
)

// Pump delivers any pose events the transport has buffered into the store.
// The controller calls it once per tick, before reading the store.
type Pump interface {
	Pump()
}

// CommandSink accepts velocity commands. No acknowledgement is expected.
type CommandSink interface {
	Publish(cmd Twist) error
}

// Controller runs the rotation and translation loops against a pose store.
//
// The loops have no timeout: they poll until their stopping condition holds
// or ctx is cancelled, so a dead pose feed blocks them forever.
type Controller struct {
	cfg   Config
	store *pose.Store
	pump  Pump
	sink  CommandSink

	onProgress func(Progress)
	now        func() time.Time
}

// NewController wires a controller to its pose store, event pump and command sink.
func NewController(cfg Config, store *pose.Store, pump Pump, sink CommandSink) *Controller {
	return &Controller{
		cfg:   cfg,
		store: store,
		pump:  pump,
		sink:  sink,
		now:   time.Now,
	}
}

// OnProgress registers a callback invoked on every tick of every phase.
// It runs on the control loop goroutine and must not block.
func (c *Controller) OnProgress(fn func(Progress)) {
	c.onProgress = fn
}

// Execute waits for the initial pose, rotates by rotation radians and then
// translates by translation. Both phases measure from the same initial pose.
func (c *Controller) Execute(ctx context.Context, rotation, translation float64) error {
	initial, err := c.WaitForInitialPose(ctx)
	if err != nil {
		return err
	}
	log.Printf("mover: initial pose x=%.3f y=%.3f z=%.3f yaw=%.1f deg",
		initial.Position.X, initial.Position.Y, initial.Position.Z, ToDegree(initial.Orientation.Yaw()))

	if err := c.Rotate(ctx, initial, rotation); err != nil {
		return err
	}
	if err := c.Translate(ctx, initial, translation); err != nil {
		return err
	}

	c.report(Progress{Phase: PhaseDone, Done: true})
	return nil
}

// IsInitialPose reports whether p counts as a real odometry sample.
//
// The check is (x != 0 || y != 0) && z != 0: a pose on the z = 0 plane is
// never accepted.
func IsInitialPose(p pose.Pose) bool {
	return (p.Position.X != 0 || p.Position.Y != 0) && p.Position.Z != 0
}

// WaitForInitialPose polls the store every tick until IsInitialPose holds
// and returns that pose.
func (c *Controller) WaitForInitialPose(ctx context.Context) (pose.Pose, error) {
	ticker := time.NewTicker(c.cfg.Tick)
	defer ticker.Stop()

	log.Println("mover: waiting for initial pose")
	for {
		c.pump.Pump()

		if p, ok := c.store.Read(); ok && IsInitialPose(p) {
			return p, nil
		}
		c.report(Progress{Phase: PhaseWaiting})

		select {
		case <-ctx.Done():
			return pose.Pose{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Rotate turns in place until the angle from reference strictly exceeds |radians|.
// The turn direction is fixed by the sign of radians.
func (c *Controller) Rotate(ctx context.Context, reference pose.Pose, radians float64) error {
	cmd := Twist{}
	if radians > 0 {
		cmd.Angular.Z = c.cfg.RotationSpeed
	} else {
		cmd.Angular.Z = -c.cfg.RotationSpeed
	}

	return c.run(ctx, PhaseRotate, reference, radians, cmd, func(d transform.Displacement) (float64, bool) {
		return d.Angle, math.Abs(d.Angle) > math.Abs(radians)
	})
}

// Translate drives straight until the distance from reference reaches |distance|.
// The drive direction is fixed by the sign of distance.
func (c *Controller) Translate(ctx context.Context, reference pose.Pose, distance float64) error {
	cmd := Twist{}
	if distance > 0 {
		cmd.Linear.X = c.cfg.TranslationSpeed
	} else {
		cmd.Linear.X = -c.cfg.TranslationSpeed
	}

	return c.run(ctx, PhaseTranslate, reference, distance, cmd, func(d transform.Displacement) (float64, bool) {
		return d.Distance, math.Abs(d.Distance) >= math.Abs(distance)
	})
}

// run is the loop shared by both phases. done maps the displacement to the
// measured quantity and the stopping decision. A single zero command is sent
// on every exit path.
func (c *Controller) run(
	ctx context.Context,
	phase Phase,
	reference pose.Pose,
	target float64,
	cmd Twist,
	done func(transform.Displacement) (float64, bool),
) error {
	ticker := time.NewTicker(c.cfg.Tick)
	defer ticker.Stop()
	defer c.stop(phase)

	log.Printf("mover: %s started, target %.4f", phase, target)
	for {
		c.pump.Pump()

		current, ok := c.store.Read()
		if !ok {
			current = reference
		}
		measured, finished := done(transform.Relative(reference, current))

		c.report(Progress{Phase: phase, Target: math.Abs(target), Measured: measured, Done: finished})
		if finished {
			log.Printf("mover: %s done, measured %.4f", phase, measured)
			return nil
		}

		if err := c.sink.Publish(cmd); err != nil {
			log.Printf("mover: %s command publish error: %v", phase, err)
		}

		select {
		case <-ctx.Done():
			log.Printf("mover: %s interrupted at %.4f", phase, measured)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Controller) stop(phase Phase) {
	if err := c.sink.Publish(Twist{}); err != nil {
		log.Printf("mover: %s stop command publish error: %v", phase, err)
	}
}

func (c *Controller) report(p Progress) {
	if c.onProgress == nil {
		return
	}
	p.Time = c.now()
	c.onProgress(p)
}
