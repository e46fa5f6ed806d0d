package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"hotel_enrich/internal/adapters/observability"
	"hotel_enrich/internal/adapters/tabular"
	"hotel_enrich/internal/app"
	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
	mysqlrepo "hotel_enrich/internal/storage/mysql"
)

var (
	outputDir  string
	configPath string
	parallel   int
)

var runCmd = &cobra.Command{
	Use:   "run <input> [input...]",
	Short: "Enrich one or more CSV/XLSX registry files",
	Long: `The run command reads each input, derives the enrichment columns and writes
<base>.csv (UTF-8 with BOM) and <base>.xlsx into the output directory. A single
input is written as enriched_hotels; several inputs are written as
<input name>_enriched_hotels.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logFile, err := observability.OpenLogFile(outputDir)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		log.Logger = observability.NewLogger(cfg.AppEnv, logFile)

		observability.RegisterDefault()
		observability.Serve()

		rules, err := app.LoadRules(log.Logger, configPath)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		lookups := app.LoadLookups(log.Logger, app.LookupPaths{
			Geography:    cfg.GeographyPath,
			GroupDomains: cfg.GroupDomainsPath,
			MajorCities:  cfg.MajorCitiesPath,
		})
		pipe := enrich.NewPipeline(rules, lookups, enrich.WithWorkers(cfg.Workers))

		var sink domain.OutputSink
		if cfg.MySQLDSN != "" {
			db, err := sql.Open("mysql", cfg.MySQLDSN)
			if err != nil {
				return fmt.Errorf("sql.Open: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("db.Ping: %w", err)
			}
			log.Info().Msg("database connection ok, output sink enabled")
			sink = mysqlrepo.New(db)
		}

		svc := app.NewBatchService(tabular.NewReader(log.Logger), tabular.NewWriter(), sink, pipe, log.Logger)

		// acquire before launching the goroutine; release inside it
		sem := semaphore.NewWeighted(int64(max(parallel, 1)))
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			failures int
		)
		for _, input := range args {
			if err := sem.Acquire(ctx, 1); err != nil {
				return fmt.Errorf("semaphore acquire: %w", err)
			}
			wg.Add(1)
			go func(input string) {
				defer wg.Done()
				defer sem.Release(1)

				req := app.RunRequest{InputPath: input, OutputDir: outputDir, BaseName: baseName(input, len(args))}
				res, err := svc.Run(ctx, req)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures++
					return
				}
				if err := observability.RenderSummary(os.Stdout, observability.Summary{
					RunID:    res.RunID,
					Input:    input,
					Rules:    rules.Fingerprint(),
					Duration: res.Duration,
					Stats:    res.Stats,
					Outputs:  res.Outputs,
					LogPath:  logFile.Name(),
				}); err != nil {
					log.Warn().Err(err).Msg("summary rendering failed")
				}
			}(input)
		}
		wg.Wait()

		if failures > 0 {
			return fmt.Errorf("%d of %d inputs failed, see %s", failures, len(args), logFile.Name())
		}
		return nil
	},
}

func baseName(input string, inputs int) string {
	if inputs == 1 {
		return app.DefaultBaseName
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return stem + "_" + app.DefaultBaseName
}

func init() {
	runCmd.Flags().StringVar(&outputDir, "output_dir", ".", "Output directory")
	runCmd.Flags().StringVar(&configPath, "config", os.Getenv("RULES_PATH"), "Rules YAML file (built-in rules when empty)")
	runCmd.Flags().IntVarP(&parallel, "parallel", "p", 2, "Input files processed at once")
}
