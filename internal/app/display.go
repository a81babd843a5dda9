// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/odometry_mover/internal/bus"
	"github.com/relabs-tech/odometry_mover/internal/config"
	"github.com/relabs-tech/odometry_mover/internal/display"
	"github.com/relabs-tech/odometry_mover/internal/motion"
)

// statusBox holds the latest mover status for the display loop.
type statusBox struct {
	mu   sync.RWMutex
	last motion.Progress
	have bool
}

func (b *statusBox) set(p motion.Progress) {
	b.mu.Lock()
	b.last = p
	b.have = true
	b.mu.Unlock()
}

func (b *statusBox) get() (motion.Progress, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.have
}

// RunDisplay shows mover status on an SSD1306 OLED (address 0x3C) on
// DISPLAY_I2C_BUS, refreshed every DISPLAY_UPDATE_INTERVAL.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	i2cBus, err := i2creg.Open(cfg.DisplayI2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer i2cBus.Close()

	dev, err := ssd1306.NewI2C(i2cBus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	defer dev.Halt()
	log.Println("display: SSD1306 initialized")

	if err := drawLines(dev, display.StatusLines(motion.Progress{}, false)); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	client, err := bus.Connect(cfg.MQTTBroker, cfg.MQTTClientIDDisplay)
	if err != nil {
		return err
	}
	defer client.Close()

	box := &statusBox{}
	err = client.Subscribe(cfg.TopicStatus, func(_ mqtt.Client, msg mqtt.Message) {
		p, err := bus.DecodeProgress(msg.Payload())
		if err != nil {
			log.Printf("display: %v", err)
			return
		}
		box.set(p)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.DisplayEvery())
	defer ticker.Stop()

	log.Println("display: starting update loop")
	for {
		select {
		case <-ctx.Done():
			log.Println("display: shutting down")
			return nil
		case <-ticker.C:
			p, have := box.get()
			if err := drawLines(dev, display.StatusLines(p, have)); err != nil {
				log.Printf("display: error updating display: %v", err)
			}
		}
	}
}

func drawLines(dev *ssd1306.Dev, lines []string) error {
	return dev.Draw(dev.Bounds(), display.Render(lines), image.Point{})
}
