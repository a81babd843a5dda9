// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"fmt"
	"time"
)

// Config holds the controller's loop period and drive speeds.
type Config struct {
	Tick             time.Duration // control loop period
	RotationSpeed    float64       // rad/s, magnitude
	TranslationSpeed float64       // units/s, magnitude
}

// DefaultConfig returns a 1 kHz loop turning at 0.75 rad/s and driving at 0.25 units/s.
func DefaultConfig() Config {
	return Config{
		Tick:             time.Millisecond,
		RotationSpeed:    0.75,
		TranslationSpeed: 0.25,
	}
}

// Validate rejects configurations the loops cannot run with.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be > 0, got %v", c.Tick)
	}
	if c.RotationSpeed <= 0 {
		return fmt.Errorf("rotation speed must be > 0, got %v", c.RotationSpeed)
	}
	if c.TranslationSpeed <= 0 {
		return fmt.Errorf("translation speed must be > 0, got %v", c.TranslationSpeed)
	}
	return nil
}
