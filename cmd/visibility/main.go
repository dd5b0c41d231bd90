// seehuhn.de/go/visibility - 2D visibility polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command visibility reads a scene, applies bombs to it and draws the
// results.
//
// Usage:
//
//	visibility -f scene.geo -o outdir [-e indir] [-q cmds.qry]
//	           [-to q|m] [-i n] [-config file.yaml] [-mask] [-v]
//
// The scene is drawn to outdir/scene.pdf.  With -q, the commands are
// applied, a report is written to outdir/scene-cmds.txt, the final scene to
// outdir/scene-cmds.pdf and every bomb to outdir/scene-cmds-suffix.pdf.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/config"
	"seehuhn.de/go/visibility/draw"
	"seehuhn.de/go/visibility/mask"
	"seehuhn.de/go/visibility/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "visibility:", err)
		os.Exit(1)
	}
}

type flags struct {
	inDir, geo, outDir, qry string
	sort                    string
	threshold               int
	configFile              string
	mask                    bool
	verbose                 bool
}

func run() error {
	var f flags
	flag.StringVar(&f.inDir, "e", ".", "base directory for input files")
	flag.StringVar(&f.geo, "f", "", "scene file (.geo), relative to -e")
	flag.StringVar(&f.outDir, "o", "", "output directory")
	flag.StringVar(&f.qry, "q", "", "command file (.qry), relative to -e")
	flag.StringVar(&f.sort, "to", "", "event sort: q (fast) or m (stable merge)")
	flag.IntVar(&f.threshold, "i", 0, "insertion sort threshold for -to m")
	flag.StringVar(&f.configFile, "config", "", "YAML settings file")
	flag.BoolVar(&f.mask, "mask", false, "write visibility masks as PNG images")
	flag.BoolVar(&f.verbose, "v", false, "log progress to stderr")
	flag.Parse()

	if f.geo == "" || f.outDir == "" {
		flag.Usage()
		return fmt.Errorf("-f and -o are required")
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	visibility.SetLogger(log)

	cfg, err := settings(&f)
	if err != nil {
		return err
	}

	geoPath := filepath.Join(f.inDir, f.geo)
	sc, err := readScene(geoPath)
	if err != nil {
		return err
	}
	log.Info("scene loaded", slog.String("file", geoPath), slog.Int("shapes", len(sc.Shapes)))

	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return err
	}
	geoBase := baseName(f.geo)
	pic := &draw.Picture{Shapes: sc.Shapes, YDown: cfg.YDown}
	if err := pic.WritePDF(filepath.Join(f.outDir, geoBase+".pdf")); err != nil {
		return err
	}

	if f.qry == "" {
		return nil
	}
	return runQueries(&f, cfg, sc, geoBase)
}

// settings combines the configuration file with the command line flags.
// Flags given explicitly take precedence.
func settings(f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		var err error
		cfg, err = config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "to":
			cfg.Sort, err = visibility.ParseSortMode(f.sort)
		case "i":
			cfg.InsertionThreshold = f.threshold
		case "mask":
			cfg.Mask.Images = f.mask
		}
	})
	if err != nil {
		return nil, err
	}
	opt := cfg.Options()
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runQueries(f *flags, cfg *config.Config, sc *scene.Scene, geoBase string) error {
	qryPath := filepath.Join(f.inDir, f.qry)
	cmds, err := readCommands(qryPath)
	if err != nil {
		return err
	}
	stem := geoBase + "-" + baseName(f.qry)

	report, err := os.Create(filepath.Join(f.outDir, stem+".txt"))
	if err != nil {
		return err
	}
	defer report.Close()
	w := bufio.NewWriter(report)

	var polys []visibility.Polygon
	var origins []vec.Vec2

	proc := scene.NewProcessor(sc)
	cfg.Apply(proc)
	proc.Report = w
	proc.OnBlast = func(b *scene.Blast) error {
		polys = append(polys, b.Polygon)
		origins = append(origins, b.Origin)

		name := filepath.Join(f.outDir, stem+"-"+bombSuffix(b.Command))
		pic := &draw.Picture{
			Shapes:    sc.Shapes,
			Obstacles: proc.Obstacles,
			Polygons:  []visibility.Polygon{b.Polygon},
			Origins:   []vec.Vec2{b.Origin},
			YDown:     cfg.YDown,
		}
		if err := pic.WritePDF(name + ".pdf"); err != nil {
			return err
		}
		if cfg.Mask.Images && b.Mask != nil {
			return writeMask(name+".png", b.Mask)
		}
		return nil
	}
	if err := proc.Run(cmds); err != nil {
		return fmt.Errorf("%s: %w", qryPath, err)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := report.Close(); err != nil {
		return err
	}

	pic := &draw.Picture{
		Shapes:    sc.Shapes,
		Obstacles: proc.Obstacles,
		Polygons:  polys,
		Origins:   origins,
		YDown:     cfg.YDown,
	}
	return pic.WritePDF(filepath.Join(f.outDir, stem+".pdf"))
}

func readScene(fname string) (*scene.Scene, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	sc, err := scene.ReadGeo(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return sc, nil
}

func readCommands(fname string) ([]scene.Command, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	cmds, err := scene.ReadCommands(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cmds, nil
}

func writeMask(fname string, m *mask.Mask) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := draw.WritePNG(fd, m); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// baseName strips directories and the extension from a file name.
func baseName(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func bombSuffix(cmd scene.Command) string {
	switch cmd := cmd.(type) {
	case scene.Destroy:
		return cmd.Suffix
	case scene.Paint:
		return cmd.Suffix
	case scene.Clone:
		return cmd.Suffix
	default:
		return "bomb"
	}
}
