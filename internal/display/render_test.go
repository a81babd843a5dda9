// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"math"
	"testing"

	"github.com/relabs-tech/odometry_mover/internal/motion"
)

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		p     motion.Progress
		have  bool
		first string
		want  string
	}{
		{"no data", motion.Progress{}, false, "Odometry Mover", "Waiting..."},
		{"waiting", motion.Progress{Phase: motion.PhaseWaiting}, true, "Mover", "initial pose"},
		{"rotate", motion.Progress{Phase: motion.PhaseRotate, Target: math.Pi / 2, Measured: math.Pi / 4}, true, "Rotate", "T:   90.0 deg"},
		{"rotate measured", motion.Progress{Phase: motion.PhaseRotate, Target: math.Pi / 2, Measured: math.Pi / 4}, true, "Rotate", "M:   45.0 deg"},
		{"translate", motion.Progress{Phase: motion.PhaseTranslate, Target: 0.5, Measured: 0.5, Done: true}, true, "Translate", "reached"},
		{"done", motion.Progress{Phase: motion.PhaseDone}, true, "Mover", "Done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := StatusLines(tt.p, tt.have)
			if len(lines) == 0 || lines[0] != tt.first {
				t.Fatalf("lines = %q, want first %q", lines, tt.first)
			}
			found := false
			for _, l := range lines {
				if l == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("lines = %q, missing %q", lines, tt.want)
			}
			if len(lines) > maxLines {
				t.Errorf("%d lines do not fit on the panel", len(lines))
			}
		})
	}
}

func TestStatusLines_FitWidth(t *testing.T) {
	p := motion.Progress{Phase: motion.PhaseTranslate, Target: -123.456, Measured: 99.999}
	for _, l := range StatusLines(p, true) {
		// Face7x13 glyphs are 7 pixels wide.
		if len(l)*7 > Width {
			t.Errorf("line %q is wider than %d px", l, Width)
		}
	}
}

func TestRender_BlankAndText(t *testing.T) {
	blank := Render(nil)
	if b := blank.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("bounds = %v", b)
	}
	for i, px := range blank.Pix {
		if px != 0 {
			t.Fatalf("blank frame has pixel byte %d = %#x", i, px)
		}
	}

	img := Render([]string{"Rotate"})
	lit := 0
	for _, px := range img.Pix {
		if px != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("rendered text lit no pixels")
	}
}

func TestRender_IgnoresExtraLines(t *testing.T) {
	four := Render([]string{"a", "b", "c", "d"})
	five := Render([]string{"a", "b", "c", "d", "e"})
	for i := range four.Pix {
		if four.Pix[i] != five.Pix[i] {
			t.Fatalf("line past the panel changed byte %d", i)
		}
	}
}
