// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/gps"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// RunGPSOdomProducer opens the GPS serial port, turns valid RMC fixes into
// poses in a local frame anchored at the first fix, and publishes them on
// TOPIC_ODOM.
//
// Heading comes from course over ground, which does not move while the robot
// turns in place: these poses can drive translations but not rotations.
func RunGPSOdomProducer() error {
	cfg := config.Get()

	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDGPS)
	if err != nil {
		return err
	}
	defer client.Close()

	// NOTE: adjust GPS_SERIAL_PORT to match your setup: /dev/serial0, /dev/ttyAMA0, /dev/ttyUSB0, etc.
	serialOpts := serial.OpenOptions{
		PortName:              cfg.GPSSerialPort,
		BaudRate:              uint(cfg.GPSBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("open GPS serial port %s: %w", serialOpts.PortName, err)
	}
	defer port.Close()
	log.Printf("gps: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	tracker := gps.NewTracker(cfg.GPSAntennaHeight)
	return readNMEA(port, tracker, func(p pose.Pose, fix gps.Fix) error {
		if err := client.PublishJSON(cfg.TopicOdom, false, p); err != nil {
			log.Printf("gps: odom publish error: %v", err)
			return nil
		}
		log.Printf("gps: fix lat=%.6f lon=%.6f -> x=%.2f y=%.2f z=%.2f", fix.Latitude, fix.Longitude,
			p.Position.X, p.Position.Y, p.Position.Z)
		return nil
	})
}

// readNMEA feeds every parseable sentence from r to tracker and hands each
// resulting pose to publish. It returns when r fails or publish does.
func readNMEA(r io.Reader, tracker *gps.Tracker, publish func(pose.Pose, gps.Fix) error) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("GPS read error: %w", err)
		}

		line = strings.TrimSpace(line)
		// NMEA sentences start with '$'
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// noisy GPS or partial sentences
			continue
		}

		p, fix, ok := tracker.Feed(sentence)
		if !ok {
			continue
		}
		if err := publish(p, fix); err != nil {
			return err
		}
	}
}
