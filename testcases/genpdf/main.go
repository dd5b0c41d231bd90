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

// Command genpdf draws the visibility polygon of every test case.
// With -png, the PDFs are also rendered to PNG using Ghostscript.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/draw"
	"seehuhn.de/go/visibility/testcases"
)

const refDir = "testdata/reference"

func main() {
	withPNG := flag.Bool("png", false, "render PNG images using Ghostscript")
	flag.Parse()

	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if !*withPNG {
				continue
			}
			pngPath := filepath.Join(refDir, name+".png")
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	walls := make([]visibility.Segment, len(tc.Walls))
	for i, w := range tc.Walls {
		walls[i] = visibility.Segment{ID: i + 1, A: w.A, B: w.B}
	}
	opt := &visibility.Options{FrameMargin: tc.Margin}
	poly, err := visibility.Compute(tc.Origin, walls, opt)
	if err != nil {
		return err
	}

	pic := &draw.Picture{
		Obstacles: walls,
		Polygons:  []visibility.Polygon{poly},
		Origins:   []vec.Vec2{tc.Origin},
	}
	return pic.WritePDF(pdfPath)
}

func renderPNG(pdfPath, pngPath string) error {
	// -r72: one scene unit per pixel
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
