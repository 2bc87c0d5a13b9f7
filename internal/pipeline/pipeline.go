package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ManuelOsorioLab/searchGen1/internal/cache"
	"github.com/ManuelOsorioLab/searchGen1/internal/model"
	"github.com/ManuelOsorioLab/searchGen1/internal/qblast"
	"github.com/ManuelOsorioLab/searchGen1/internal/report"
	"github.com/ManuelOsorioLab/searchGen1/internal/worker"
)

// Searcher runs one remote search. Satisfied by *qblast.Client.
type Searcher interface {
	Search(ctx context.Context, q model.Query) (*model.SearchResult, error)
}

// Pipeline orchestrates the search-and-save run over a list of organisms
type Pipeline struct {
	searcher Searcher
	cache    cache.Cache
	throttle *worker.Throttle
	writer   *report.Writer
	config   *model.Config
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	return &Pipeline{
		searcher: qblast.NewClient(cfg.HTTP, cfg.Search.PollInterval),
		cache:    c,
		throttle: worker.NewThrottle(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize, cfg.Search.Delay),
		writer:   report.NewWriter(cfg.Output.Dir),
		config:   cfg,
	}
}

// OrganismResult summarizes one organism's search
type OrganismResult struct {
	Organism string
	RID      string
	Hits     int
	Files    []string
}

// Run processes the organisms in order, one blocking search each.
// The first failure aborts the remaining organisms; results for the
// organisms completed so far are returned alongside the error.
func (p *Pipeline) Run(ctx context.Context, organisms []string) ([]OrganismResult, error) {
	if strings.TrimSpace(p.config.Search.Sequence) == "" {
		return nil, fmt.Errorf("empty query sequence")
	}
	if len(organisms) == 0 {
		return nil, fmt.Errorf("no organisms to search")
	}

	results := make([]OrganismResult, 0, len(organisms))
	for i, organism := range organisms {
		res, err := p.SearchOrganism(ctx, organism, i > 0)
		if err != nil {
			return results, fmt.Errorf("organism %q: %w", organism, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// SearchOrganism runs one search and writes its reports. delayed
// applies the fixed inter-query delay before hitting the service.
func (p *Pipeline) SearchOrganism(ctx context.Context, organism string, delayed bool) (OrganismResult, error) {
	q := model.Query{
		Program:     p.config.Search.Program,
		Database:    p.config.Search.Database,
		Sequence:    p.config.Search.Sequence,
		Organism:    organism,
		Expect:      p.config.Search.Expect,
		HitlistSize: p.config.Search.HitlistSize,
		Email:       p.config.Search.Email,
		Tool:        p.config.Search.Tool,
	}

	result, err := p.search(ctx, q, delayed)
	if err != nil {
		return OrganismResult{}, err
	}

	if result.QueryLen == 0 {
		result.QueryLen = len(q.Sequence)
	}

	reports, err := report.BuildAll(organism, result)
	if err != nil {
		return OrganismResult{}, err
	}

	paths, err := p.writer.WriteAll(reports)
	if err != nil {
		return OrganismResult{}, err
	}

	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ %s: %d hits, %d reports (RID %s)\n",
			organism, len(result.Hits), len(paths), result.RID)
	}

	return OrganismResult{
		Organism: organism,
		RID:      result.RID,
		Hits:     len(result.Hits),
		Files:    paths,
	}, nil
}

// search consults the cache before paying for a remote round trip
func (p *Pipeline) search(ctx context.Context, q model.Query, delayed bool) (*model.SearchResult, error) {
	key := q.CacheKey()

	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var cached model.SearchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				if p.config.Output.Verbose {
					fmt.Fprintf(os.Stderr, "✓ %s: cached result\n", q.Organism)
				}
				return &cached, nil
			}
			// Unreadable entry: fall through to a fresh search
			_ = p.cache.Delete(key)
		}
	}

	if delayed {
		if err := p.throttle.WaitWithDelay(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := p.throttle.Wait(ctx); err != nil {
			return nil, err
		}
	}

	result, err := p.searcher.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return result, nil
}
