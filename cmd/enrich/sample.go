package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_enrich/internal/adapters/tabular"
	"hotel_enrich/internal/app"
	"hotel_enrich/internal/fixtures"
)

const defaultSampleRows = 100

var (
	sampleDir  string
	sampleFake bool
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample [input] [n]",
	Short: "Write the first n rows of an input (or n synthetic rows) to test_<n>_rows.csv",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if !sampleFake {
			if len(args) == 0 {
				return fmt.Errorf("an input file is required unless --fake is set")
			}
			input, args = args[0], args[1:]
		}
		n := defaultSampleRows
		if len(args) > 1 {
			return fmt.Errorf("unexpected argument %q", args[1])
		}
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row count %q", args[0])
			}
			n = v
		}
		if n < 1 {
			return fmt.Errorf("row count must be positive, got %d", n)
		}

		w := &tabular.Writer{SkipXLSX: true}
		var (
			paths []string
			rows  int
			err   error
		)
		if sampleFake {
			t := fixtures.Generate(n, sampleSeed)
			paths, err = w.WriteFiles(t, sampleDir, app.SampleBaseName(n))
			rows = t.Len()
		} else {
			paths, rows, err = app.Sample(tabular.NewReader(log.Logger), w, app.SampleRequest{
				InputPath: input, OutputDir: sampleDir, Rows: n,
			})
		}
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Info().Str("path", p).Int("rows", rows).Msg("sample written")
		}
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleDir, "output_dir", ".", "Output directory")
	sampleCmd.Flags().BoolVar(&sampleFake, "fake", false, "Generate synthetic rows instead of reading an input")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", time.Now().UnixNano(), "Seed for --fake")
}
