package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotel_enrich/internal/adapters/observability"
	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

// DefaultBaseName is the stem of the batch output files.
const DefaultBaseName = "enriched_hotels"

type RunRequest struct {
	InputPath string
	OutputDir string
	BaseName  string
}

type RunResult struct {
	RunID    string
	Stats    enrich.Stats
	Outputs  []string
	Duration time.Duration
}

// BatchService runs one file through the pipeline and writes the outputs.
type BatchService struct {
	reader domain.TableReader
	writer domain.TableWriter
	sink   domain.OutputSink // optional
	pipe   *enrich.Pipeline
	log    zerolog.Logger
}

func NewBatchService(r domain.TableReader, w domain.TableWriter, sink domain.OutputSink, p *enrich.Pipeline, log zerolog.Logger) *BatchService {
	return &BatchService{reader: r, writer: w, sink: sink, pipe: p, log: log}
}

func (s *BatchService) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	start := time.Now()
	res := RunResult{RunID: uuid.NewString()}
	log := s.log.With().Str("run_id", res.RunID).Logger()

	err := s.run(ctx, log, req, &res)
	res.Duration = time.Since(start)
	observability.ObserveRun("batch", res.Stats, res.Duration, err)
	if err != nil {
		log.Error().Err(err).Dur("duration", res.Duration).Msg("enrichment run failed")
		return res, err
	}
	log.Info().Int("rows", res.Stats.Rows).Dur("duration", res.Duration).Msg("enrichment run complete")
	return res, nil
}

func (s *BatchService) run(ctx context.Context, log zerolog.Logger, req RunRequest, res *RunResult) error {
	if req.BaseName == "" {
		req.BaseName = DefaultBaseName
	}
	log.Info().Str("input", req.InputPath).Str("output_dir", req.OutputDir).
		Str("rules", s.pipe.Rules().Fingerprint()).Msg("enrichment run started")

	in, err := s.reader.ReadFile(req.InputPath)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	out, stats, err := s.pipe.Enrich(ctx, in)
	if err != nil {
		var se *domain.SchemaError
		if errors.As(err, &se) {
			log.Error().Strs("missing", se.Missing).Strs("available", se.Available).Msg("input schema rejected")
		}
		return fmt.Errorf("enrich: %w", err)
	}
	res.Stats = stats
	logStages(log, stats)

	paths, err := s.writer.WriteFiles(out, req.OutputDir, req.BaseName)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	res.Outputs = paths
	for _, p := range paths {
		log.Info().Str("path", p).Msg("output written")
	}

	if s.sink != nil {
		if err := s.sink.SaveTable(ctx, res.RunID, out); err != nil {
			return fmt.Errorf("save to sink: %w", err)
		}
		log.Info().Int("rows", out.Len()).Msg("output table stored in sink")
	}
	return nil
}

// SampleRequest extracts the first N rows of an input into a smaller file.
type SampleRequest struct {
	InputPath string
	OutputDir string
	Rows      int
}

// SampleBaseName names the extract after its size.
func SampleBaseName(n int) string { return fmt.Sprintf("test_%d_rows", n) }

// Sample reads an input file and writes at most req.Rows rows of it unchanged.
func Sample(r domain.TableReader, w domain.TableWriter, req SampleRequest) ([]string, int, error) {
	in, err := r.ReadFile(req.InputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("load input: %w", err)
	}
	head := in.Head(req.Rows)
	paths, err := w.WriteFiles(head, req.OutputDir, SampleBaseName(req.Rows))
	if err != nil {
		return nil, 0, fmt.Errorf("write sample: %w", err)
	}
	return paths, head.Len(), nil
}
