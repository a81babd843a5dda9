// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"encoding/json"
	"fmt"

	"github.com/relabs-tech/odometry_mover/internal/motion"
)

// DecodeTwist parses a JSON velocity command.
func DecodeTwist(payload []byte) (motion.Twist, error) {
	var cmd motion.Twist
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return motion.Twist{}, fmt.Errorf("twist unmarshal error: %w", err)
	}
	return cmd, nil
}

// DecodeProgress parses a JSON mover status message.
func DecodeProgress(payload []byte) (motion.Progress, error) {
	var p motion.Progress
	if err := json.Unmarshal(payload, &p); err != nil {
		return motion.Progress{}, fmt.Errorf("status unmarshal error: %w", err)
	}
	return p, nil
}
