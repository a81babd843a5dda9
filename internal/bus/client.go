// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package bus carries poses, velocity commands and mover status over MQTT.
package bus

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Client is a connected MQTT session shared by the feeds and publishers of one process.
type Client struct {
	conn mqtt.Client
}

// Connect opens a session to broker (e.g. "tcp://localhost:1883").
func Connect(broker, clientID string) (*Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	conn := mqtt.NewClient(opts)
	if token := conn.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect to %s: %w", broker, token.Error())
	}
	log.Printf("bus: connected to MQTT broker at %s as %s", broker, clientID)

	return &Client{conn: conn}, nil
}

// Close disconnects, giving in-flight messages 250 ms to drain.
func (c *Client) Close() {
	c.conn.Disconnect(250)
}

// Subscribe registers handler for topic at QoS 0.
func (c *Client) Subscribe(topic string, handler mqtt.MessageHandler) error {
	token := c.conn.Subscribe(topic, 0, handler)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("MQTT subscribe %s: %w", topic, token.Error())
	}
	log.Printf("bus: subscribed to %s", topic)
	return nil
}

// PublishJSON marshals v and publishes it at QoS 0.
func (c *Client) PublishJSON(topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal for %s: %w", topic, err)
	}
	if token := c.conn.Publish(topic, 0, retained, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish %s: %w", topic, token.Error())
	}
	return nil
}
