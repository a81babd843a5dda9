// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"log"
	"time"

	"github.com/relabs-tech/odometry_mover/internal/motion"
)

// CommandPublisher sends velocity commands; it satisfies motion.CommandSink.
type CommandPublisher struct {
	client *Client
	topic  string
}

func NewCommandPublisher(client *Client, topic string) *CommandPublisher {
	return &CommandPublisher{client: client, topic: topic}
}

// Publish sends cmd, not retained: a late subscriber must never replay a stale velocity.
func (p *CommandPublisher) Publish(cmd motion.Twist) error {
	return p.client.PublishJSON(p.topic, false, cmd)
}

// StatusPublisher forwards controller progress, at most once per interval
// within a phase. Phase changes and completions always go out.
type StatusPublisher struct {
	client   *Client
	topic    string
	interval time.Duration

	last     motion.Progress
	lastSent time.Time
	sent     bool
}

func NewStatusPublisher(client *Client, topic string, interval time.Duration) *StatusPublisher {
	return &StatusPublisher{client: client, topic: topic, interval: interval}
}

// Report is meant for motion.Controller.OnProgress.
func (s *StatusPublisher) Report(p motion.Progress) {
	if s.sent && p.Phase == s.last.Phase && p.Done == s.last.Done && p.Time.Sub(s.lastSent) < s.interval {
		return
	}
	if err := s.client.PublishJSON(s.topic, true, p); err != nil {
		log.Printf("bus: status publish error: %v", err)
		return
	}
	s.last = p
	s.lastSent = p.Time
	s.sent = true
}
