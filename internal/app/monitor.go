// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/monitor"
)

// RunMonitor subscribes to odometry, commands and mover status and serves
// them to browsers: /ws streams updates, /api/state returns the latest
// values and / serves ./web.
func RunMonitor() error {
	cfg := config.Get()

	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDMonitor)
	if err != nil {
		return err
	}
	defer client.Close()

	hub := monitor.NewHub()
	if err := subscribeHub(client, cfg, hub); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/api/state", hub.ServeState)
	// Static files from ./web as the root
	mux.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("monitor: web server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func subscribeHub(client *bus.Client, cfg *config.Config, hub *monitor.Hub) error {
	err := client.Subscribe(cfg.TopicOdom, func(_ mqtt.Client, msg mqtt.Message) {
		p, err := bus.DecodePose(msg.Payload())
		if err != nil {
			log.Printf("monitor: %v", err)
			return
		}
		hub.UpdatePose(p)
	})
	if err != nil {
		return err
	}

	err = client.Subscribe(cfg.TopicCmdVel, func(_ mqtt.Client, msg mqtt.Message) {
		cmd, err := bus.DecodeTwist(msg.Payload())
		if err != nil {
			log.Printf("monitor: %v", err)
			return
		}
		hub.UpdateCmd(cmd)
	})
	if err != nil {
		return err
	}

	if cfg.TopicStatus == "" {
		return nil
	}
	return client.Subscribe(cfg.TopicStatus, func(_ mqtt.Client, msg mqtt.Message) {
		p, err := bus.DecodeProgress(msg.Payload())
		if err != nil {
			log.Printf("monitor: %v", err)
			return
		}
		hub.UpdateStatus(p)
	})
}
