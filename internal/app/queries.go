package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"hotel_enrich/internal/adapters/observability"
	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

// maxCachedBody keeps large enrichment results out of the cache.
const maxCachedBody = 1_000_000

// QueryService answers the API: single lookups and whole-CSV enrichment,
// all cache-aside.
type QueryService struct {
	pipe     *enrich.Pipeline
	lookups  enrich.Lookups
	codec    domain.TableCodec
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(p *enrich.Pipeline, l enrich.Lookups, codec domain.TableCodec, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{pipe: p, lookups: l, codec: codec, cache: c, cacheTTL: ttl}
}

// GetDepartment resolves a postal code. domain.ErrNotFound when no
// department can be inferred from it.
func (s *QueryService) GetDepartment(ctx context.Context, postal string) (domain.DepartmentView, error) {
	clean := enrich.CleanPostalCode(postal)
	dept := enrich.InferDepartment(clean)
	if dept == "" {
		return domain.DepartmentView{}, fmt.Errorf("department for %q: %w", postal, domain.ErrNotFound)
	}

	key := "dept:" + clean
	var dv domain.DepartmentView
	if ok, _ := s.cache.Get(ctx, key, &dv); ok {
		return dv, nil
	}
	dv = toDepartmentView(clean, dept, s.lookups.Geography)
	_ = s.cache.Set(ctx, key, dv, int(s.cacheTTL.Seconds()))
	return dv, nil
}

// ClassifyWebsite reports domain and ownership for a website cell. An
// unusable URL is not an error; it classifies as unknown.
func (s *QueryService) ClassifyWebsite(ctx context.Context, rawURL string) (domain.DomainView, error) {
	rawURL = strings.TrimSpace(rawURL)
	key := "domain:" + strings.ToLower(rawURL)
	var dv domain.DomainView
	if ok, _ := s.cache.Get(ctx, key, &dv); ok {
		return dv, nil
	}
	dv = toDomainView(rawURL, s.lookups.Groups)
	_ = s.cache.Set(ctx, key, dv, int(s.cacheTTL.Seconds()))
	return dv, nil
}

// EnrichCSV enriches a CSV payload. Results are cached under the payload
// hash and the rules fingerprint, so a rules change never serves stale output.
func (s *QueryService) EnrichCSV(ctx context.Context, body []byte) (domain.EnrichedCSV, error) {
	sum := sha1.Sum(body)
	key := "csv:" + s.pipe.Rules().Fingerprint() + ":" + hex.EncodeToString(sum[:])

	var out domain.EnrichedCSV
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	start := time.Now()
	res, stats, err := s.enrich(ctx, body)
	observability.ObserveRun("api", stats, time.Since(start), err)
	if err != nil {
		return domain.EnrichedCSV{}, err
	}

	out = domain.EnrichedCSV{Body: res, Rows: stats.Rows}
	if len(res) < maxCachedBody {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) enrich(ctx context.Context, body []byte) ([]byte, enrich.Stats, error) {
	in, err := s.codec.Decode(body)
	if err != nil {
		return nil, enrich.Stats{}, err
	}
	t, stats, err := s.pipe.Enrich(ctx, in)
	if err != nil {
		return nil, enrich.Stats{}, err
	}
	b, err := s.codec.Encode(t)
	if err != nil {
		return nil, enrich.Stats{}, err
	}
	return b, stats, nil
}

func (s *QueryService) Rules() enrich.Rules { return s.pipe.Rules() }

// OutputColumns lists the columns EnrichCSV appends.
func (s *QueryService) OutputColumns() []string { return s.pipe.OutputColumns() }
