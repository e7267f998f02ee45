// navtool is a CLI utility for inspecting Source-engine navigation meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/sourcenav/internal/config"
	"github.com/Faultbox/sourcenav/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "areas", "ls":
		cmdAreas(cfg, args)
	case "height", "h":
		cmdHeight(cfg, args)
	case "places":
		cmdPlaces(cfg, args)
	case "ladders":
		cmdLadders(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`navtool - Source-engine navigation mesh utility

Usage:
  navtool [flags] <command> [args]

Commands:
  info <file.nav>                     Show mesh information
  areas <file.nav> [place]            List areas, optionally only one place
  height <file.nav> <x> <y> [z-hint]  Query ground height at a point
  places <file.nav>                   List named places with area counts
  ladders <file.nav>                  List the global ladder table

Flags:
  -config <path>     Config file (default: ./navtool.yaml)
  -nav-dir <path>    Directory for resolving bare map names
  -z-hint <z>        Default height hint for queries
  -limit <n>         Limit listing output (0 = all)
  -debug             Enable debug logging
  -log-file <path>   Write logs to this file

Examples:
  navtool info pl_badwater.nav
  navtool -nav-dir /srv/maps areas pl_badwater
  navtool height pl_badwater.nav 1600 -1300
  navtool height pl_badwater.nav 360 -1200 250`)
}
