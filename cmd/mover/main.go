// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/relabs-tech/odometry_mover/internal/app"
	"github.com/relabs-tech/odometry_mover/internal/config"
)

const usage = "Usage: mover [-config file] [-sim] <rotation in degrees> <translation>"

type options struct {
	configPath  string
	useSim      bool
	rotation    float64
	translation float64
}

func main() {
	opts, ok := parseCommandLine(os.Args[1:])
	if !ok {
		fmt.Println(usage)
		os.Exit(1)
	}

	log.Println("starting odometry mover (MQTT odom → cmd_vel)")

	// Load configuration
	if err := config.InitGlobal(opts.configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunMover(opts.rotation, opts.translation, opts.useSim); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parseCommandLine reads flags and the two positional numbers. Any flag
// error, -h included, is reported as a usage error.
func parseCommandLine(args []string) (options, bool) {
	var opts options

	fs := flag.NewFlagSet("mover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "./mover_config.txt", "path to configuration file")
	fs.BoolVar(&opts.useSim, "sim", false, "drive an in-process simulated robot instead of MQTT")

	flagArgs, numbers := splitArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return options{}, false
	}

	rotation, translation, ok := parseArgs(append(numbers, fs.Args()...))
	if !ok {
		return options{}, false
	}
	opts.rotation = rotation
	opts.translation = translation
	return opts, true
}

// splitArgs pulls numeric arguments out before flag parsing so that a
// negative rotation such as -90 is not taken for a flag.
func splitArgs(args []string) (flagArgs, numbers []string) {
	for _, a := range args {
		if _, err := strconv.ParseFloat(a, 64); err == nil {
			numbers = append(numbers, a)
			continue
		}
		flagArgs = append(flagArgs, a)
	}
	return flagArgs, numbers
}

// parseArgs accepts exactly two finite numbers: rotation (degrees) and translation.
func parseArgs(args []string) (rotation, translation float64, ok bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	rotation, ok = parseFinite(args[0])
	if !ok {
		return 0, 0, false
	}
	translation, ok = parseFinite(args[1])
	if !ok {
		return 0, 0, false
	}
	return rotation, translation, true
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
