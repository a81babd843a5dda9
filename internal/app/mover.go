// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
	"github.com/relabs-tech/odometry_mover/internal/sim"
)

// RunMover waits for odometry, turns the robot by rotationDeg degrees and
// then drives it translation units along its initial heading. With useSim
// the commands drive an in-process simulated robot instead of MQTT.
//
// Ctrl+C stops the robot and returns nil.
func RunMover(rotationDeg, translation float64, useSim bool) error {
	cfg := config.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mcfg, err := moverConfig(cfg)
	if err != nil {
		return err
	}
	if math.Abs(rotationDeg) >= 180 {
		log.Printf("mover: warning: measured angle never exceeds 180 deg, a %.1f deg rotation will not finish", rotationDeg)
	}
	log.Printf("mover: rotate %.2f deg, translate %.3f", rotationDeg, translation)

	if useSim {
		rig := newSimRig(cfg, mcfg)
		err = rig.ctrl.Execute(ctx, motion.ToRadian(rotationDeg), translation)
		p := rig.robot.Pose()
		log.Printf("mover: simulated robot at x=%.3f y=%.3f yaw=%.1f deg",
			p.Position.X, p.Position.Y, motion.ToDegree(p.Orientation.Yaw()))
	} else {
		err = moveOverBus(ctx, cfg, mcfg, motion.ToRadian(rotationDeg), translation)
	}

	if errors.Is(err, context.Canceled) {
		log.Println("mover: interrupted, robot stopped")
		return nil
	}
	return err
}

func moverConfig(cfg *config.Config) (motion.Config, error) {
	mcfg := motion.Config{
		Tick:             cfg.TickInterval(),
		RotationSpeed:    cfg.RotationSpeed,
		TranslationSpeed: cfg.TranslationSpeed,
	}
	if err := mcfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("mover config: %w", err)
	}
	return mcfg, nil
}

func moveOverBus(ctx context.Context, cfg *config.Config, mcfg motion.Config, rotation, translation float64) error {
	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDMover)
	if err != nil {
		return err
	}
	defer client.Close()

	store := pose.NewStore()
	feed := bus.NewPoseFeed(cfg.OdomQueueSize, store.Write)
	if err := client.Subscribe(cfg.TopicOdom, feed.OnMessage); err != nil {
		return err
	}

	ctrl := motion.NewController(mcfg, store, feed, bus.NewCommandPublisher(client, cfg.TopicCmdVel))
	if cfg.TopicStatus != "" {
		status := bus.NewStatusPublisher(client, cfg.TopicStatus, cfg.StatusEvery())
		ctrl.OnProgress(status.Report)
	}

	err = ctrl.Execute(ctx, rotation, translation)
	if n := feed.Dropped(); n > 0 {
		log.Printf("mover: %d odometry messages dropped, control loop fell behind", n)
	}
	return err
}

// simRig is a controller closed over an in-process simulated robot.
type simRig struct {
	robot *sim.Robot
	loop  *sim.Loopback
	ctrl  *motion.Controller
}

func newSimRig(cfg *config.Config, mcfg motion.Config) *simRig {
	robot := sim.NewRobot(simStart(cfg))
	store := pose.NewStore()
	loop := sim.NewLoopback(robot, store, cfg.SimStep())
	return &simRig{
		robot: robot,
		loop:  loop,
		ctrl:  motion.NewController(mcfg, store, loop, loop),
	}
}

func simStart(cfg *config.Config) pose.Pose {
	return pose.New(cfg.SimStartX, cfg.SimStartY, cfg.SimStartZ, motion.ToRadian(cfg.SimStartYaw))
}
