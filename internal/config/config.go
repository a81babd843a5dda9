// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker          string
	MQTTClientIDMover   string
	MQTTClientIDSim     string
	MQTTClientIDGPS     string
	MQTTClientIDMonitor string
	MQTTClientIDDisplay string
	MQTTClientIDConsole string

	// Topics
	TopicOdom   string
	TopicCmdVel string
	TopicStatus string

	// Mover
	OdomQueueSize    int
	TickIntervalUS   int     // control loop period, microseconds
	RotationSpeed    float64 // rad/s
	TranslationSpeed float64 // units/s
	StatusInterval   int     // milliseconds

	// Simulator
	SimStepInterval int // milliseconds
	SimStartX       float64
	SimStartY       float64
	SimStartZ       float64
	SimStartYaw     float64 // degrees

	// GPS
	GPSSerialPort    string
	GPSBaudRate      int
	GPSAntennaHeight float64 // metres above the base frame

	// Web Server
	WebServerPort int

	// Display
	DisplayI2CBus         string // "" selects the first bus
	DisplayUpdateInterval int    // milliseconds
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through Get().
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the values used for any key the file leaves out.
func Default() *Config {
	return &Config{
		MQTTBroker:          "tcp://localhost:1883",
		MQTTClientIDMover:   "odometry-mover",
		MQTTClientIDSim:     "odometry-sim-robot",
		MQTTClientIDGPS:     "odometry-gps-producer",
		MQTTClientIDMonitor: "odometry-monitor",
		MQTTClientIDDisplay: "odometry-display",
		MQTTClientIDConsole: "odometry-console",

		TopicOdom:   "robot/odom",
		TopicCmdVel: "robot/cmd_vel",
		TopicStatus: "robot/mover/status",

		OdomQueueSize:    100,
		TickIntervalUS:   1000,
		RotationSpeed:    0.75,
		TranslationSpeed: 0.25,
		StatusInterval:   100,

		SimStepInterval: 10,
		SimStartX:       0.5,
		SimStartY:       0.5,
		SimStartZ:       0.01,

		GPSSerialPort:    "/dev/serial0",
		GPSBaudRate:      9600,
		GPSAntennaHeight: 0.1,

		WebServerPort: 8080,

		DisplayUpdateInterval: 200,
	}
}

// Load reads the configuration file over the defaults and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_MOVER":
		c.MQTTClientIDMover = value
	case "MQTT_CLIENT_ID_SIM":
		c.MQTTClientIDSim = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_MONITOR":
		c.MQTTClientIDMonitor = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value

	// Topics
	case "TOPIC_ODOM":
		c.TopicOdom = value
	case "TOPIC_CMD_VEL":
		c.TopicCmdVel = value
	case "TOPIC_STATUS":
		c.TopicStatus = value

	// Mover
	case "ODOM_QUEUE_SIZE":
		return setInt(&c.OdomQueueSize, key, value)
	case "TICK_INTERVAL_US":
		return setInt(&c.TickIntervalUS, key, value)
	case "ROTATION_SPEED":
		return setFloat(&c.RotationSpeed, key, value)
	case "TRANSLATION_SPEED":
		return setFloat(&c.TranslationSpeed, key, value)
	case "STATUS_INTERVAL":
		return setInt(&c.StatusInterval, key, value)

	// Simulator
	case "SIM_STEP_INTERVAL":
		return setInt(&c.SimStepInterval, key, value)
	case "SIM_START_X":
		return setFloat(&c.SimStartX, key, value)
	case "SIM_START_Y":
		return setFloat(&c.SimStartY, key, value)
	case "SIM_START_Z":
		return setFloat(&c.SimStartZ, key, value)
	case "SIM_START_YAW":
		return setFloat(&c.SimStartYaw, key, value)

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		return setInt(&c.GPSBaudRate, key, value)
	case "GPS_ANTENNA_HEIGHT":
		return setFloat(&c.GPSAntennaHeight, key, value)

	// Web Server
	case "WEB_SERVER_PORT":
		return setInt(&c.WebServerPort, key, value)

	// Display
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value
	case "DISPLAY_UPDATE_INTERVAL":
		return setInt(&c.DisplayUpdateInterval, key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func setInt(dst *int, key, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = v
	return nil
}

// validate checks that required fields are set and numeric fields are usable.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicOdom == "" || c.TopicCmdVel == "" {
		return fmt.Errorf("TOPIC_ODOM and TOPIC_CMD_VEL are required")
	}
	if c.OdomQueueSize <= 0 {
		return fmt.Errorf("ODOM_QUEUE_SIZE must be > 0, got %d", c.OdomQueueSize)
	}
	if c.TickIntervalUS <= 0 {
		return fmt.Errorf("TICK_INTERVAL_US must be > 0, got %d", c.TickIntervalUS)
	}
	if c.RotationSpeed <= 0 {
		return fmt.Errorf("ROTATION_SPEED must be > 0, got %v", c.RotationSpeed)
	}
	if c.TranslationSpeed <= 0 {
		return fmt.Errorf("TRANSLATION_SPEED must be > 0, got %v", c.TranslationSpeed)
	}
	if c.SimStepInterval <= 0 {
		return fmt.Errorf("SIM_STEP_INTERVAL must be > 0, got %d", c.SimStepInterval)
	}
	if c.DisplayUpdateInterval <= 0 {
		return fmt.Errorf("DISPLAY_UPDATE_INTERVAL must be > 0, got %d", c.DisplayUpdateInterval)
	}
	return nil
}

// TickInterval returns the control loop period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalUS) * time.Microsecond
}

// StatusEvery returns the minimum gap between status messages within a phase.
func (c *Config) StatusEvery() time.Duration {
	return time.Duration(c.StatusInterval) * time.Millisecond
}

// SimStep returns the simulator integration step.
func (c *Config) SimStep() time.Duration {
	return time.Duration(c.SimStepInterval) * time.Millisecond
}

// DisplayEvery returns the OLED refresh period.
func (c *Config) DisplayEvery() time.Duration {
	return time.Duration(c.DisplayUpdateInterval) * time.Millisecond
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
