// Copyright 2026 the original author or authors.
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

// Package decode implements the decode command, dumping a feature stream
// as text or GeoJSON.
package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"m4o.io/georender"
	"m4o.io/georender/cmd/georender/cli"
	"m4o.io/georender/feature"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(decodeCmd)

	flags := decodeCmd.Flags()
	flags.Bool("geojson", false, "write a GeoJSON FeatureCollection")
	flags.Uint16("cpu", georender.DefaultNCpu(), "number of CPUs to use for decoding")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [<stream>]",
	Short: "Dump the records of a feature stream",
	Long:  "Dump the records of a feature stream as text, one per line, or as GeoJSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		geoJSON, err := flags.GetBool("geojson")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(args, false)
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		if geoJSON {
			err = runGeoJSON(cmd.Context(), in, ncpu)
		} else {
			err = runText(cmd.Context(), in, ncpu)
		}

		if err != nil {
			log.Fatal(err)
		}
	},
}

// each calls fn for every feature of the stream, in order.
func each(ctx context.Context, in io.Reader, ncpu uint16, fn func(feature.Feature) error) error {
	d, err := georender.NewDecoder(ctx, in, georender.WithDecoderNCpus(ncpu))
	if err != nil {
		return err
	}
	defer d.Close()

	for {
		features, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		for _, f := range features {
			if err = fn(f); err != nil {
				return err
			}
		}
	}
}

func runText(ctx context.Context, in io.Reader, ncpu uint16) error {
	return each(ctx, in, ncpu, func(f feature.Feature) error {
		_, err := fmt.Fprintln(out, formatText(f))

		return err
	})
}

func formatText(f feature.Feature) string {
	h := f.Meta()

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s id=%d type=%d", f.Kind(), h.ID, h.FeatureType)

	switch v := f.(type) {
	case *feature.Point:
		fmt.Fprintf(&sb, " position=%g,%g", v.Position[0], v.Position[1])
	case *feature.Line:
		fmt.Fprintf(&sb, " vertices=%d", len(v.Positions)/2)
	case *feature.Area:
		fmt.Fprintf(&sb, " vertices=%d triangles=%d", len(v.Positions)/2, v.Triangles())
	}

	labels, err := feature.ParseLabels(h.Labels)
	if err == nil {
		for _, l := range labels {
			if l.Lang == "" {
				fmt.Fprintf(&sb, " name=%q", l.Value)
			} else {
				fmt.Fprintf(&sb, " name:%s=%q", l.Lang, l.Value)
			}
		}
	}

	return sb.String()
}

func runGeoJSON(ctx context.Context, in io.Reader, ncpu uint16) error {
	fc := geojson.NewFeatureCollection()

	err := each(ctx, in, ncpu, func(f feature.Feature) error {
		fc.Append(toGeoJSON(f))

		return nil
	})
	if err != nil {
		return err
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

// toGeoJSON converts a record; areas become a MultiPolygon of their
// triangles.
func toGeoJSON(f feature.Feature) *geojson.Feature {
	var g orb.Geometry

	switch v := f.(type) {
	case *feature.Point:
		g = toPoint(v.Position[0], v.Position[1])
	case *feature.Line:
		ls := make(orb.LineString, 0, len(v.Positions)/2)
		for i := 0; i+1 < len(v.Positions); i += 2 {
			ls = append(ls, toPoint(v.Positions[i], v.Positions[i+1]))
		}
		g = ls
	case *feature.Area:
		vertex := func(i int) orb.Point {
			return toPoint(v.Positions[2*i], v.Positions[2*i+1])
		}

		mp := make(orb.MultiPolygon, 0, v.Triangles())
		for i := 0; i+2 < len(v.Cells); i += 3 {
			a, b, c := vertex(v.Cells[i]), vertex(v.Cells[i+1]), vertex(v.Cells[i+2])
			mp = append(mp, orb.Polygon{orb.Ring{a, b, c, a}})
		}
		g = mp
	}

	h := f.Meta()

	gf := geojson.NewFeature(g)
	gf.ID = h.ID
	gf.Properties["type"] = h.FeatureType

	if labels, err := feature.ParseLabels(h.Labels); err == nil {
		for _, l := range labels {
			key := "name"
			if l.Lang != "" {
				key += ":" + l.Lang
			}
			gf.Properties[key] = l.Value
		}
	}

	return gf
}

func toPoint(lon, lat float32) orb.Point {
	return orb.Point{float64(lon), float64(lat)}
}
