// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package monitor streams the robot's pose, velocity commands and mover
// status to browsers.
package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/odometry_mover/internal/motion"
	"github.com/relabs-tech/odometry_mover/internal/pose"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Event is one WebSocket frame: Type is "pose", "cmd" or "status".
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// State is the latest value seen on each topic.
type State struct {
	Pose   *pose.Pose       `json:"pose,omitempty"`
	Cmd    *motion.Twist    `json:"cmd,omitempty"`
	Status *motion.Progress `json:"status,omitempty"`
}

func (s State) empty() bool {
	return s.Pose == nil && s.Cmd == nil && s.Status == nil
}

// Hub keeps the latest state and fans updates out to connected clients.
type Hub struct {
	mu      sync.RWMutex
	state   State
	clients map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: map[*websocket.Conn]*sync.Mutex{}}
}

func (h *Hub) UpdatePose(p pose.Pose) {
	h.mu.Lock()
	h.state.Pose = &p
	h.mu.Unlock()
	h.broadcast(Event{Type: "pose", Data: p})
}

func (h *Hub) UpdateCmd(cmd motion.Twist) {
	h.mu.Lock()
	h.state.Cmd = &cmd
	h.mu.Unlock()
	h.broadcast(Event{Type: "cmd", Data: cmd})
}

func (h *Hub) UpdateStatus(p motion.Progress) {
	h.mu.Lock()
	h.state.Status = &p
	h.mu.Unlock()
	h.broadcast(Event{Type: "status", Data: p})
}

// Snapshot returns a copy of the latest state.
func (h *Hub) Snapshot() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Clients returns the number of connected WebSocket clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeState is the JSON API endpoint for the latest state.
func (h *Hub) ServeState(w http.ResponseWriter, r *http.Request) {
	st := h.Snapshot()
	if st.empty() {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("monitor: json encode error: %v", err)
	}
}

// ServeWS upgrades the request, sends the current state and then streams
// every update until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: websocket upgrade error: %v", err)
		return
	}

	writeMu := &sync.Mutex{}
	writeMu.Lock()
	h.mu.Lock()
	h.clients[conn] = writeMu
	snapshot := h.state
	h.mu.Unlock()

	err = writeEvent(conn, Event{Type: "snapshot", Data: snapshot})
	writeMu.Unlock()
	if err != nil {
		h.remove(conn)
		return
	}
	log.Printf("monitor: client connected from %s", r.RemoteAddr)

	// Reads only detect the close; clients send nothing we act on.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			log.Printf("monitor: client %s disconnected", r.RemoteAddr)
			return
		}
	}
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, m := range h.clients {
		targets[c] = m
	}
	h.mu.RUnlock()

	for conn, writeMu := range targets {
		writeMu.Lock()
		err := writeEvent(conn, ev)
		writeMu.Unlock()
		if err != nil {
			log.Printf("monitor: write error, dropping client: %v", err)
			h.remove(conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

func writeEvent(conn *websocket.Conn, ev Event) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ev)
}
