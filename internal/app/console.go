// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// RunConsole prints odometry, velocity commands and mover status until Ctrl+C.
func RunConsole() error {
	cfg := config.Get()

	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	defer client.Close()

	err = client.Subscribe(cfg.TopicOdom, func(_ mqtt.Client, msg mqtt.Message) {
		p, err := bus.DecodePose(msg.Payload())
		if err != nil {
			log.Printf("console: %v", err)
			return
		}
		fmt.Println(formatPose(p))
	})
	if err != nil {
		return err
	}

	err = client.Subscribe(cfg.TopicCmdVel, func(_ mqtt.Client, msg mqtt.Message) {
		cmd, err := bus.DecodeTwist(msg.Payload())
		if err != nil {
			log.Printf("console: %v", err)
			return
		}
		fmt.Println(formatTwist(cmd))
	})
	if err != nil {
		return err
	}

	if cfg.TopicStatus != "" {
		err = client.Subscribe(cfg.TopicStatus, func(_ mqtt.Client, msg mqtt.Message) {
			p, err := bus.DecodeProgress(msg.Payload())
			if err != nil {
				log.Printf("console: %v", err)
				return
			}
			fmt.Printf("[STAT] %s\n", p)
		})
		if err != nil {
			return err
		}
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	return nil
}

func formatPose(p pose.Pose) string {
	return fmt.Sprintf("[ODOM] x=%8.3f y=%8.3f z=%7.3f yaw=%7.2f°",
		p.Position.X, p.Position.Y, p.Position.Z, motion.ToDegree(p.Orientation.Yaw()))
}

func formatTwist(cmd motion.Twist) string {
	return fmt.Sprintf("[CMD ] v=%6.3f w=%6.3f", cmd.Linear.X, cmd.Angular.Z)
}
