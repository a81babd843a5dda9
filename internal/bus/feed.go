// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/odometry_mover/internal/pose"
)

// DefaultQueueSize matches the odometry subscription depth of the robots we drive.
const DefaultQueueSize = 100

// PoseFeed buffers poses arriving on the MQTT goroutine until the control
// loop pumps them into its handler. When the buffer is full the oldest pose
// is dropped: only the latest pose matters.
type PoseFeed struct {
	pending chan pose.Pose
	handle  func(pose.Pose)
	dropped atomic.Uint64
}

// NewPoseFeed returns a feed delivering to handle, typically (*pose.Store).Write.
func NewPoseFeed(queueSize int, handle func(pose.Pose)) *PoseFeed {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &PoseFeed{
		pending: make(chan pose.Pose, queueSize),
		handle:  handle,
	}
}

// OnMessage is the mqtt.MessageHandler for the odometry topic.
func (f *PoseFeed) OnMessage(_ mqtt.Client, msg mqtt.Message) {
	p, err := DecodePose(msg.Payload())
	if err != nil {
		log.Printf("bus: %s: %v", msg.Topic(), err)
		return
	}
	f.enqueue(p)
}

func (f *PoseFeed) enqueue(p pose.Pose) {
	for {
		select {
		case f.pending <- p:
			return
		default:
		}
		select {
		case <-f.pending:
			f.dropped.Add(1)
		default:
		}
	}
}

// Pump hands every buffered pose to the handler, oldest first, without blocking.
func (f *PoseFeed) Pump() {
	for {
		select {
		case p := <-f.pending:
			f.handle(p)
		default:
			return
		}
	}
}

// Dropped returns how many poses were discarded because the buffer was full.
func (f *PoseFeed) Dropped() uint64 {
	return f.dropped.Load()
}

// DecodePose parses a JSON pose and rejects non-finite values.
func DecodePose(payload []byte) (pose.Pose, error) {
	var p pose.Pose
	if err := json.Unmarshal(payload, &p); err != nil {
		return pose.Pose{}, fmt.Errorf("pose unmarshal error: %w", err)
	}
	for _, v := range []float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.X, p.Orientation.Y, p.Orientation.Z, p.Orientation.W,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return pose.Pose{}, fmt.Errorf("pose has non-finite component %v", v)
		}
	}
	return p, nil
}
