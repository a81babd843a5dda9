// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/sim"
)

// RunSimRobot stands in for a real base: it integrates velocity commands
// from TOPIC_CMD_VEL and publishes the resulting odometry on TOPIC_ODOM
// every SIM_STEP_INTERVAL.
func RunSimRobot() error {
	cfg := config.Get()

	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDSim)
	if err != nil {
		return err
	}
	defer client.Close()

	robot := sim.NewRobot(simStart(cfg))
	err = client.Subscribe(cfg.TopicCmdVel, func(_ mqtt.Client, msg mqtt.Message) {
		cmd, err := bus.DecodeTwist(msg.Payload())
		if err != nil {
			log.Printf("sim: %v", err)
			return
		}
		robot.Command(cmd)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.SimStep())
	defer ticker.Stop()
	dt := cfg.SimStep().Seconds()

	log.Printf("sim: publishing odometry on %s every %v", cfg.TopicOdom, cfg.SimStep())
	for {
		select {
		case <-ctx.Done():
			log.Println("sim: shutting down")
			return nil
		case <-ticker.C:
			p := robot.Step(dt)
			if err := client.PublishJSON(cfg.TopicOdom, false, p); err != nil {
				log.Printf("sim: odom publish error: %v", err)
			}
		}
	}
}
