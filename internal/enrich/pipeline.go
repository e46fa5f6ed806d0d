package enrich

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"hotel_enrich/internal/domain"
)

// Derived column names.
const (
	ColDepartment     = "department"
	ColRegion         = "region"
	ColCapacityRange  = "capacity_range"
	ColSizeSegment    = "size_segment"
	ColRestaurantFlag = "restaurant_flag"
	ColSpaFlag        = "spa_flag"
	ColHotelDomain    = "hotel_domain"
	ColOwnership      = "independent_or_group"
	ColGroupName      = "group_name"
	ColLargeProperty  = "large_property_flag"
	ColBoutique       = "boutique_flag"
	ColContext        = "hotel_context"
	ColDepartmentName = "department_name"
	ColCleanName      = "hotel_name_clean"
)

// baseColumns is the fixed order of the always-present derived columns.
var baseColumns = []string{
	ColDepartment, ColRegion, ColCapacityRange, ColSizeSegment,
	ColRestaurantFlag, ColSpaFlag, ColHotelDomain, ColOwnership, ColGroupName,
	ColLargeProperty, ColBoutique, ColContext,
}

const defaultChunkSize = 512

// Derived holds every computed field of one row.
type Derived struct {
	Department     string
	DepartmentName string
	Region         string
	Size           SizeSegment
	Restaurant     bool
	Spa            bool
	Domain         string
	Ownership      Ownership
	GroupName      string
	LargeProperty  bool
	Boutique       bool
	Context        Context
	CleanName      string
}

// Pipeline applies the rules to whole tables. Safe for concurrent use.
type Pipeline struct {
	rules   Rules
	lookups Lookups
	cleaner *NameCleaner
	workers int
	chunk   int
}

type Option func(*Pipeline)

// WithWorkers bounds the goroutines deriving rows; n < 1 means GOMAXPROCS.
func WithWorkers(n int) Option { return func(p *Pipeline) { p.workers = n } }

func WithChunkSize(n int) Option { return func(p *Pipeline) { p.chunk = n } }

func NewPipeline(rules Rules, lookups Lookups, opts ...Option) *Pipeline {
	p := &Pipeline{
		rules:   rules,
		lookups: lookups,
		cleaner: NewNameCleaner(rules.NameFallback),
		chunk:   defaultChunkSize,
	}
	for _, o := range opts {
		o(p)
	}
	if p.workers < 1 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	if p.chunk < 1 {
		p.chunk = defaultChunkSize
	}
	return p
}

func (p *Pipeline) Rules() Rules { return p.rules }

// OutputColumns lists the derived columns in output order for this edition.
func (p *Pipeline) OutputColumns() []string {
	cols := append([]string(nil), baseColumns...)
	if p.rules.Output.DepartmentName {
		cols = append(cols, ColDepartmentName)
	}
	if p.rules.Output.CleanName {
		cols = append(cols, ColCleanName)
	}
	return cols
}

// Derive computes the derived fields of a single row.
func (p *Pipeline) Derive(r domain.Row) Derived {
	th := p.rules.Thresholds
	rooms := th.KnownCount(ParseOptionalInt(r.Get(domain.ColChambres)))
	capacity := th.KnownCount(ParseOptionalInt(r.Get(domain.ColCapacite)))
	star := ParseOptionalFloat(r.Get(domain.ColStar))
	name := r.Get(domain.ColNomCommercial)

	var d Derived
	d.Department = InferDepartment(CleanPostalCode(r.Get(domain.ColCodePostal)))
	d.Region = ResolveRegion(d.Department, p.lookups.Geography)
	if p.rules.Output.DepartmentName {
		d.DepartmentName = ResolveDepartmentName(d.Department, p.lookups.Geography)
	}
	d.Size = SizeLabel(rooms, th)
	d.Restaurant = HasRestaurant(name, p.rules.RestaurantKeywords)
	d.Spa = HasSpa(name, p.rules.SpaKeywords)
	d.Domain = ExtractDomain(r.Get(domain.ColWebsite))
	d.Ownership = Classify(d.Domain, p.lookups.Groups)
	d.GroupName = ResolveGroupName(d.Domain, p.lookups.Groups)
	d.LargeProperty = IsLargeProperty(rooms, capacity, th)
	d.Boutique = IsBoutique(d.Ownership, rooms, star, th)
	d.Context = ClassifyContext(r.Get(domain.ColTypeHebergement), name, r.Get(domain.ColCommune), p.lookups.Cities)
	if p.rules.Output.CleanName {
		d.CleanName = p.cleaner.Clean(name)
	}
	return d
}

// Enrich validates the schema, derives every row and returns the input
// columns followed by the derived ones. Input rows are not modified.
// Derived columns already present in the input are overwritten in place,
// so enriching an enriched table gives the same table back.
func (p *Pipeline) Enrich(ctx context.Context, in domain.Table) (domain.Table, Stats, error) {
	if err := domain.ValidateColumns(in); err != nil {
		return domain.Table{}, Stats{}, err
	}

	cols := append([]string(nil), in.Columns...)
	for _, c := range p.OutputColumns() {
		if !in.HasColumn(c) {
			cols = append(cols, c)
		}
	}

	n := len(in.Rows)
	rows := make([]domain.Row, n)
	derived := make([]Derived, n)

	// chunks write disjoint index ranges; no locking needed
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for start := 0; start < n; start += p.chunk {
		lo, hi := start, min(start+p.chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				d := p.Derive(in.Rows[i])
				derived[i] = d
				rows[i] = p.apply(in.Rows[i], d)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Table{}, Stats{}, err
	}

	out := make([]domain.Row, 0, n)
	stats := newStats()
	for i, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, r)
		stats.add(derived[i])
	}
	if len(out) != n {
		return domain.Table{}, Stats{}, &domain.RowCountError{In: n, Out: len(out)}
	}
	return domain.Table{Columns: cols, Rows: out}, stats, nil
}

func (p *Pipeline) apply(in domain.Row, d Derived) domain.Row {
	out := in.Clone(len(baseColumns) + 2)
	out[ColDepartment] = d.Department
	out[ColRegion] = d.Region
	out[ColCapacityRange] = CapacityRange(d.Size)
	out[ColSizeSegment] = string(d.Size)
	out[ColRestaurantFlag] = strconv.FormatBool(d.Restaurant)
	out[ColSpaFlag] = strconv.FormatBool(d.Spa)
	out[ColHotelDomain] = d.Domain
	out[ColOwnership] = string(d.Ownership)
	out[ColGroupName] = d.GroupName
	out[ColLargeProperty] = strconv.FormatBool(d.LargeProperty)
	out[ColBoutique] = strconv.FormatBool(d.Boutique)
	out[ColContext] = string(d.Context)
	if p.rules.Output.DepartmentName {
		out[ColDepartmentName] = d.DepartmentName
	}
	if p.rules.Output.CleanName {
		out[ColCleanName] = d.CleanName
	}
	return out
}
