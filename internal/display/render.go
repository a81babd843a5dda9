// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package display renders mover status for a 128x64 SSD1306 OLED.
package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/odometry_mover/internal/motion"
)

const (
	Width  = 128
	Height = 64

	lineHeight = 13
	maxLines   = Height / lineHeight
)

// StatusLines formats the latest progress report. have is false until the
// first report arrives.
func StatusLines(p motion.Progress, have bool) []string {
	if !have {
		return []string{"Odometry Mover", "Waiting..."}
	}

	switch p.Phase {
	case motion.PhaseWaiting:
		return []string{"Mover", "Waiting for", "initial pose"}
	case motion.PhaseRotate:
		return []string{
			"Rotate",
			fmt.Sprintf("T: %6.1f deg", motion.ToDegree(p.Target)),
			fmt.Sprintf("M: %6.1f deg", motion.ToDegree(p.Measured)),
			doneLabel(p.Done),
		}
	case motion.PhaseTranslate:
		return []string{
			"Translate",
			fmt.Sprintf("T: %7.3f", p.Target),
			fmt.Sprintf("M: %7.3f", p.Measured),
			doneLabel(p.Done),
		}
	case motion.PhaseDone:
		return []string{"Mover", "Done"}
	default:
		return []string{"Mover", string(p.Phase)}
	}
}

func doneLabel(done bool) string {
	if done {
		return "reached"
	}
	return "moving"
}

// Render draws up to four lines of text into a blank frame.
func Render(lines []string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	for i, line := range lines {
		if i >= maxLines {
			break
		}
		drawer.Dot = fixed.P(0, (i+1)*lineHeight)
		drawer.DrawBytes([]byte(line))
	}

	return img
}
