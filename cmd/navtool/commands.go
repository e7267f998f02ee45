package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sourcenav/internal/config"
	"github.com/Faultbox/sourcenav/internal/logger"
	"github.com/Faultbox/sourcenav/pkg/nav"
)

// resolveNavPath turns a bare map name into a path under the configured nav
// directory; anything that already looks like a path is used as-is.
func resolveNavPath(cfg *config.Config, arg string) string {
	if strings.ContainsAny(arg, `/\`) || filepath.Ext(arg) == ".nav" {
		return arg
	}
	return filepath.Join(cfg.Data.NavDir, arg+".nav")
}

func loadMesh(cfg *config.Config, arg string) (*nav.Mesh, *nav.Index) {
	path := resolveNavPath(cfg, arg)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	mesh, index, err := nav.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}
	logger.Debug("parsed nav mesh",
		zap.String("path", path),
		zap.String("version", mesh.Version.String()),
		zap.Int("areas", mesh.AreaCount()),
		zap.Duration("elapsed", time.Since(start)))

	return mesh, index
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: navtool info <file.nav>")
		os.Exit(1)
	}

	mesh, _ := loadMesh(cfg, args[0])

	hidingSpots := 0
	encounterPaths := 0
	connections := 0
	for _, a := range mesh.Areas() {
		hidingSpots += len(a.HidingSpots)
		encounterPaths += len(a.EncounterPaths)
		connections += a.Connections.Count()
	}
	bounds := mesh.Bounds()

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Version:     %s\n", mesh.Version)
	fmt.Printf("Analyzed:    %v\n", mesh.Analyzed)
	fmt.Printf("Areas:       %d\n", mesh.AreaCount())
	fmt.Printf("Connections: %d\n", connections)
	fmt.Printf("Places:      %d\n", len(mesh.Places()))
	fmt.Printf("Ladders:     %d\n", len(mesh.Ladders()))
	fmt.Printf("Hiding:      %d spots, %d encounter paths\n", hidingSpots, encounterPaths)
	fmt.Printf("Bounds:      (%.1f, %.1f) - (%.1f, %.1f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
}

func cmdAreas(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: navtool areas <file.nav> [place]")
		os.Exit(1)
	}

	mesh, _ := loadMesh(cfg, args[0])

	placeFilter := ""
	if len(args) > 1 {
		placeFilter = args[1]
	}

	var areas []*nav.Area
	for _, a := range mesh.Areas() {
		if placeFilter != "" {
			name, _ := mesh.PlaceName(a.PlaceID)
			if !strings.EqualFold(name, placeFilter) {
				continue
			}
		}
		areas = append(areas, a)
	}

	for i, a := range areas {
		if cfg.Output.Limit > 0 && i >= cfg.Output.Limit {
			fmt.Printf("... %d more\n", len(areas)-i)
			break
		}
		b := a.Bounds()
		line := fmt.Sprintf("%-8d flags=0x%08X  (%.1f, %.1f)-(%.1f, %.1f)  conns=%d",
			a.ID, a.Flags, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, a.Connections.Count())
		if name, ok := mesh.PlaceName(a.PlaceID); ok {
			line += "  place=" + name
		}
		fmt.Println(line)
	}
}

func cmdHeight(cfg *config.Config, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: navtool height <file.nav> <x> <y> [z-hint]")
		os.Exit(1)
	}

	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid x: %v\n", err)
		os.Exit(1)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid y: %v\n", err)
		os.Exit(1)
	}
	zHint := cfg.Query.ZHint
	if len(args) > 3 {
		if zHint, err = strconv.ParseFloat(args[3], 64); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid z-hint: %v\n", err)
			os.Exit(1)
		}
	}

	_, index := loadMesh(cfg, args[0])

	heights := index.HeightsAt(x, y)
	if len(heights) == 0 {
		fmt.Printf("No area contains (%.1f, %.1f)\n", x, y)
		os.Exit(2)
	}

	best, _ := index.FindBestHeight(x, y, zHint)
	fmt.Printf("Height at (%.1f, %.1f): %.4f\n", x, y, best)
	if len(heights) > 1 {
		fmt.Printf("All surfaces (hint %.1f):\n", zHint)
		for _, h := range heights {
			marker := " "
			if h == best {
				marker = "*"
			}
			fmt.Printf("  %s %.4f\n", marker, h)
		}
	}
}

func cmdPlaces(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: navtool places <file.nav>")
		os.Exit(1)
	}

	mesh, _ := loadMesh(cfg, args[0])

	areasByPlace := make(map[uint16]int)
	for _, a := range mesh.Areas() {
		areasByPlace[a.PlaceID]++
	}

	for _, place := range mesh.Places() {
		fmt.Printf("%-4d %-30s %d areas\n", place.ID, place.Name, areasByPlace[place.ID])
	}
	if unplaced := areasByPlace[0]; unplaced > 0 {
		fmt.Printf("     %-30s %d areas\n", "(no place)", unplaced)
	}
}

func cmdLadders(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: navtool ladders <file.nav>")
		os.Exit(1)
	}

	mesh, _ := loadMesh(cfg, args[0])

	if len(mesh.Ladders()) == 0 {
		fmt.Println("No ladders")
		return
	}
	for _, l := range mesh.Ladders() {
		fmt.Printf("%-6d top=(%.1f, %.1f, %.1f) bottom=(%.1f, %.1f, %.1f) length=%.1f width=%.1f\n",
			l.ID,
			l.Top.X, l.Top.Y, l.Top.Z,
			l.Bottom.X, l.Bottom.Y, l.Bottom.Z,
			l.Length, l.Width)
	}
}
