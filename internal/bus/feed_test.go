// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"testing"

	"github.com/relabs-tech/odometry_mover/internal/pose"
)

const odomJSON = `{"position":{"x":1.5,"y":-2,"z":0.1},"orientation":{"x":0,"y":0,"z":0.6,"w":0.8}}`

func TestDecodePose(t *testing.T) {
	p, err := DecodePose([]byte(odomJSON))
	if err != nil {
		t.Fatalf("DecodePose returned error: %v", err)
	}
	want := pose.Pose{
		Position:    pose.Point{X: 1.5, Y: -2, Z: 0.1},
		Orientation: pose.Quaternion{Z: 0.6, W: 0.8},
	}
	if p != want {
		t.Errorf("Expected %+v, got %+v", want, p)
	}
}

func TestDecodePose_Malformed(t *testing.T) {
	tests := []string{
		``,
		`not json`,
		`{"position":{"x":"one"}}`,
		`[1,2,3]`,
	}
	for _, payload := range tests {
		if _, err := DecodePose([]byte(payload)); err == nil {
			t.Errorf("Expected error for payload %q", payload)
		}
	}
}

func TestPoseFeed_PumpDeliversInOrder(t *testing.T) {
	var got []pose.Pose
	f := NewPoseFeed(10, func(p pose.Pose) { got = append(got, p) })

	conn := newFakeConn()
	conn.Subscribe("robot/odom", 0, f.OnMessage)

	conn.deliver("robot/odom", []byte(`{"position":{"x":1}}`))
	conn.deliver("robot/odom", []byte(`garbage`))
	conn.deliver("robot/odom", []byte(`{"position":{"x":2}}`))

	if len(got) != 0 {
		t.Fatal("Expected nothing delivered before Pump")
	}

	f.Pump()
	if len(got) != 2 {
		t.Fatalf("Expected 2 poses after Pump, got %d", len(got))
	}
	if got[0].Position.X != 1 || got[1].Position.X != 2 {
		t.Errorf("Expected poses in arrival order, got %+v", got)
	}

	f.Pump()
	if len(got) != 2 {
		t.Errorf("Expected second Pump to deliver nothing, got %d poses", len(got))
	}
}

func TestPoseFeed_DropsOldestWhenFull(t *testing.T) {
	store := pose.NewStore()
	f := NewPoseFeed(3, store.Write)

	for i := 1; i <= 5; i++ {
		f.enqueue(pose.Pose{Position: pose.Point{X: float64(i)}})
	}

	if f.Dropped() != 2 {
		t.Errorf("Expected 2 dropped poses, got %d", f.Dropped())
	}

	f.Pump()
	p, ok := store.Read()
	if !ok || p.Position.X != 5 {
		t.Errorf("Expected latest pose x=5 in store, got %+v (ok=%v)", p, ok)
	}
}

func TestPoseFeed_DefaultQueueSize(t *testing.T) {
	f := NewPoseFeed(0, func(pose.Pose) {})
	if cap(f.pending) != DefaultQueueSize {
		t.Errorf("Expected queue size %d, got %d", DefaultQueueSize, cap(f.pending))
	}
}

func TestPoseFeed_ConcurrentDelivery(t *testing.T) {
	store := pose.NewStore()
	f := NewPoseFeed(8, store.Write)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 5000; i++ {
			f.enqueue(pose.Pose{Position: pose.Point{X: float64(i), Z: float64(i)}})
		}
	}()

	for {
		f.Pump()
		if p, ok := store.Read(); ok && p.Position.X != p.Position.Z {
			t.Fatalf("Torn pose %+v", p)
		}
		select {
		case <-done:
			f.Pump()
			p, _ := store.Read()
			if p.Position.X != 5000 {
				t.Errorf("Expected last pose x=5000, got %v", p.Position.X)
			}
			return
		default:
		}
	}
}
