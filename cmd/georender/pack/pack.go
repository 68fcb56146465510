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

// Package pack implements the pack command, converting an OSM PBF extract
// into a feature stream.
package pack

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/georender"
	"m4o.io/georender/cmd/georender/cli"
	"m4o.io/georender/internal/blob"
	"m4o.io/georender/internal/classify"
	"m4o.io/georender/internal/metrics"
	"m4o.io/georender/internal/osmsource"
	"m4o.io/georender/model"
)

// entityBatch is the number of entities handed to the encoder at once.
const entityBatch = 4096

var out io.Writer = os.Stderr

var compression blob.Compression

func init() {
	cli.RootCmd.AddCommand(packCmd)

	flags := packCmd.Flags()
	flags.StringP("output", "o", "", "output feature stream (stdout when empty)")
	flags.VarP(cli.NewCompressionValue(georender.DefaultBlobCompression, &compression), "compression", "c", "blob compression")
	flags.Uint16("cpu", georender.DefaultNCpu(), "number of CPUs to use for scanning and encoding")
	flags.Int("batch-size", georender.DefaultBatchSize, "number of features per blob")
	flags.String("features", "", "JSON type registry replacing the embedded one")
	flags.Bool("strict", false, "fail on elements referencing missing nodes instead of skipping them")
	flags.String("metrics", "", "write run statistics to a prometheus textfile")
}

var packCmd = &cobra.Command{
	Use:   "pack [<OSM file>]",
	Short: "Convert an OSM PBF file into a feature stream",
	Long:  "Convert an OSM PBF file into a feature stream",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		output, err := flags.GetString("output")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		metricsPath, err := flags.GetString("metrics")
		if err != nil {
			log.Fatal(err)
		}

		opts, err := encoderOptions(cmd)
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(args, true)
		if err != nil {
			log.Fatal(err)
		}

		w := io.Writer(os.Stdout)
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()

			w = f
		}

		start := time.Now()

		stats, err := runPack(cmd.Context(), in, w, ncpu, opts...)

		if cerr := in.Close(); cerr != nil && err == nil {
			err = cerr
		}

		if err != nil {
			log.Fatal(err)
		}

		elapsed := time.Since(start)

		renderStats(stats, elapsed)

		if metricsPath != "" {
			if err := metrics.WriteTextfile(metricsPath, stats, elapsed); err != nil {
				log.Fatal(err)
			}
		}
	},
}

func encoderOptions(cmd *cobra.Command) ([]georender.EncoderOption, error) {
	flags := cmd.Flags()

	ncpu, err := flags.GetUint16("cpu")
	if err != nil {
		return nil, err
	}

	batchSize, err := flags.GetInt("batch-size")
	if err != nil {
		return nil, err
	}

	strict, err := flags.GetBool("strict")
	if err != nil {
		return nil, err
	}

	opts := []georender.EncoderOption{
		georender.WithCompression(compression),
		georender.WithNCpus(ncpu),
		georender.WithBatchSize(batchSize),
		georender.WithSkipMissing(!strict),
	}

	features, err := flags.GetString("features")
	if err != nil {
		return nil, err
	}

	if features != "" {
		registry, err := classify.LoadRegistry(features)
		if err != nil {
			return nil, err
		}

		c, err := classify.New(registry)
		if err != nil {
			return nil, err
		}

		opts = append(opts, georender.WithClassifier(c))
	}

	return opts, nil
}

func runPack(ctx context.Context, in io.Reader, w io.Writer, ncpu uint16, opts ...georender.EncoderOption) (georender.Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	src := osmsource.New(ctx, in, int(ncpu))
	defer src.Close()

	enc, err := georender.NewEncoder(w, opts...)
	if err != nil {
		return georender.Stats{}, err
	}

	batch := make([]model.Entity, 0, entityBatch)

	for entity, err := range src.Entities() {
		if err != nil {
			_ = enc.Close()

			return enc.Stats(), fmt.Errorf("unable to scan input: %w", err)
		}

		batch = append(batch, entity)

		if len(batch) == entityBatch {
			if err = enc.EncodeBatch(batch); err != nil {
				_ = enc.Close()

				return enc.Stats(), err
			}

			batch = make([]model.Entity, 0, entityBatch)
		}
	}

	if len(batch) > 0 {
		if err = enc.EncodeBatch(batch); err != nil {
			_ = enc.Close()

			return enc.Stats(), err
		}
	}

	if err = enc.Close(); err != nil {
		return enc.Stats(), err
	}

	slog.Info("packed input", "scanned", humanize.Bytes(uint64(src.ScannedBytes())))

	return enc.Stats(), nil
}

func renderStats(stats georender.Stats, elapsed time.Duration) {
	fmt.Fprintf(out, "Nodes: %s\n", humanize.Comma(int64(stats.Nodes)))
	fmt.Fprintf(out, "Ways: %s\n", humanize.Comma(int64(stats.Ways)))
	fmt.Fprintf(out, "Relations: %s\n", humanize.Comma(int64(stats.Relations)))
	fmt.Fprintf(out, "Points: %s\n", humanize.Comma(int64(stats.Points)))
	fmt.Fprintf(out, "Lines: %s\n", humanize.Comma(int64(stats.Lines)))
	fmt.Fprintf(out, "Areas: %s\n", humanize.Comma(int64(stats.Areas)))
	fmt.Fprintf(out, "Skipped: %s\n", humanize.Comma(int64(stats.Skipped)))
	fmt.Fprintf(out, "Blobs: %s\n", humanize.Comma(int64(stats.Blobs)))
	fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(stats.Bytes))
	fmt.Fprintf(out, "Elapsed: %s\n", elapsed.Round(time.Millisecond))
}
