// Copyright 2017-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package info implements the info command, summarizing a feature stream.
package info

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/golang/geo/s2"
	"github.com/spf13/cobra"

	"m4o.io/georender"
	"m4o.io/georender/cmd/georender/cli"
	"m4o.io/georender/feature"
	"m4o.io/georender/model"
)

// earthRadiusKm is the mean earth radius.
const earthRadiusKm = 6371.0088

var out io.Writer = os.Stdout

type streamInfo struct {
	Points int64
	Lines  int64
	Areas  int64

	Vertices  int64
	Triangles int64

	BoundingBox *model.BoundingBox `json:",omitempty"`

	// CoveredArea is the summed surface of the area triangles, in km².
	CoveredArea float64

	// Size is the compressed size of the stream in bytes.
	Size int64
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16("cpu", georender.DefaultNCpu(), "number of CPUs to use for decoding")
}

var infoCmd = &cobra.Command{
	Use:   "info [<stream>]",
	Short: "Print information about a feature stream",
	Long:  "Print information about a feature stream",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(args, !jsonfmt)
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(cmd.Context(), in, ncpu)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info)
		}
	},
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}

func runInfo(ctx context.Context, in io.Reader, ncpu uint16) (*streamInfo, error) {
	cr := &countingReader{r: in}

	d, err := georender.NewDecoder(ctx, cr, georender.WithDecoderNCpus(ncpu))
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info := &streamInfo{}
	bbox := model.InitialBoundingBox()

	for {
		features, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		for _, f := range features {
			var positions []float32

			switch v := f.(type) {
			case *feature.Point:
				info.Points++
				bbox.ExpandWithPosition(v.Position)
				info.Vertices++
			case *feature.Line:
				info.Lines++
				positions = v.Positions
			case *feature.Area:
				info.Areas++
				info.Triangles += int64(v.Triangles())
				info.CoveredArea += coveredArea(v)
				positions = v.Positions
			default:
				return nil, fmt.Errorf("unknown feature type %T", v)
			}

			for i := 0; i+1 < len(positions); i += 2 {
				bbox.ExpandWithPosition([2]float32{positions[i], positions[i+1]})
				info.Vertices++
			}
		}
	}

	if info.Vertices > 0 {
		info.BoundingBox = bbox
	}

	info.Size = cr.n

	return info, nil
}

// coveredArea sums the spherical areas of the area's triangles in km².
func coveredArea(a *feature.Area) float64 {
	point := func(i int) s2.Point {
		lon, lat := float64(a.Positions[2*i]), float64(a.Positions[2*i+1])

		return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	}

	var steradians float64

	for i := 0; i+2 < len(a.Cells); i += 3 {
		steradians += s2.PointArea(point(a.Cells[i]), point(a.Cells[i+1]), point(a.Cells[i+2]))
	}

	return steradians * earthRadiusKm * earthRadiusKm
}

func renderJSON(info *streamInfo) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderTxt(info *streamInfo) {
	fmt.Fprintf(out, "Points: %s\n", humanize.Comma(info.Points))
	fmt.Fprintf(out, "Lines: %s\n", humanize.Comma(info.Lines))
	fmt.Fprintf(out, "Areas: %s\n", humanize.Comma(info.Areas))
	fmt.Fprintf(out, "Vertices: %s\n", humanize.Comma(info.Vertices))
	fmt.Fprintf(out, "Triangles: %s\n", humanize.Comma(info.Triangles))
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}
	fmt.Fprintf(out, "CoveredArea: %s km²\n", humanize.CommafWithDigits(info.CoveredArea, 2))
	fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(uint64(info.Size)))
}
