// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package pose

import "sync"

// Store holds the latest pose received from the feed.
//
// One goroutine (the feed) writes, any number of control loops read. Reads and
// writes are serialized on the whole Pose value so a reader never sees the
// position of one sample combined with the orientation of another.
type Store struct {
	mu   sync.RWMutex
	last Pose
	have bool
}

// NewStore returns an empty store; Read reports false until the first Write.
func NewStore() *Store {
	return &Store{}
}

// Write replaces the stored pose.
func (s *Store) Write(p Pose) {
	s.mu.Lock()
	s.last = p
	s.have = true
	s.mu.Unlock()
}

// Read returns the latest pose and whether one has arrived yet.
func (s *Store) Read() (Pose, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.have
}
