// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/relabs-tech/odometry_mover/internal/gps"
	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

const nmeaStream = "garbage line\r\n" +
	"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n" +
	"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n" +
	"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*00\r\n" +
	"$GPRMC,123521,V,4807.038,N,01131.100,E,022.4,090.0,230394,003.1,W*76\r\n" +
	"$GPRMC,123520,A,4807.038,N,01131.100,E,022.4,090.0,230394,003.1,W*60\r\n"

func TestReadNMEA_PublishesValidFixes(t *testing.T) {
	var poses []pose.Pose
	err := readNMEA(strings.NewReader(nmeaStream), gps.NewTracker(0.1), func(p pose.Pose, _ gps.Fix) error {
		poses = append(poses, p)
		return nil
	})
	if err != nil {
		t.Fatalf("readNMEA returned error: %v", err)
	}

	// Garbage, bad checksum and void fixes are skipped.
	if len(poses) != 2 {
		t.Fatalf("Expected 2 poses, got %d", len(poses))
	}
	if !motion.IsInitialPose(poses[1]) {
		t.Errorf("Expected the east fix %+v to pass the initial pose check", poses[1])
	}
	if poses[1].Position.X <= poses[0].Position.X {
		t.Errorf("Expected x to grow eastwards, got %v then %v", poses[0].Position.X, poses[1].Position.X)
	}
}

func TestReadNMEA_StopsOnPublishError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := readNMEA(strings.NewReader(nmeaStream), gps.NewTracker(0.1), func(pose.Pose, gps.Fix) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected publish error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 publish call, got %d", calls)
	}
}
