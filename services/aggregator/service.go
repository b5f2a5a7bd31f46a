package aggregator

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"magnetar/models"
)

const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"

	defaultMaxResults      = 50
	defaultProviderTimeout = 10 * time.Second
)

var (
	reIMDBID = regexp.MustCompile(`^tt\d+$`)
	reTMDBID = regexp.MustCompile(`^(?:tmdb-)?\d+$`)
)

// Service aggregates search results across every configured provider:
// concurrent fan-out, merge by info hash, episode filtering for series,
// quality/size ranking, capped output.
type Service struct {
	providers  []models.ProviderSource
	client     *Client
	timeout    time.Duration
	maxResults int
}

// NewService constructs the aggregation pipeline. The provider table is
// immutable for the lifetime of the service.
func NewService(providers []models.ProviderSource, client *Client, timeout time.Duration, maxResults int) *Service {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Service{
		providers:  providers,
		client:     client,
		timeout:    timeout,
		maxResults: maxResults,
	}
}

// Fetch runs the whole aggregation for one request. It never returns an
// error: an unrecognized id, a failing provider, a malformed payload all
// degrade to contributing nothing, and the worst case is an empty list.
//
// For series, season and episode are mandatory; calling without them is a
// programming error and panics rather than silently defaulting.
func (s *Service) Fetch(ctx context.Context, mediaType, id string, season, episode int) []models.RankedStream {
	requestID := uuid.NewString()[:8]

	if mediaType == MediaTypeSeries && (season <= 0 || episode <= 0) {
		panic(fmt.Sprintf("aggregator: series fetch requires season and episode (got S%d E%d)", season, episode))
	}

	id = strings.TrimSpace(id)
	if !reIMDBID.MatchString(id) && !reTMDBID.MatchString(id) {
		log.Printf("[aggregator] %s: unrecognized id %q, returning no streams", requestID, id)
		return nil
	}
	id = strings.TrimPrefix(id, "tmdb-")

	query := id
	if mediaType == MediaTypeSeries {
		// Informational only: providers do not reliably honor the episode
		// part, so the filter is re-applied after the merge.
		query = fmt.Sprintf("%s:%d:%d", id, season, episode)
	}

	log.Printf("[aggregator] %s: searching %d providers for %s %q", requestID, len(s.providers), mediaType, query)

	batches := s.fanOut(ctx, requestID, mediaType, query)

	candidates := Merge(batches)
	if mediaType == MediaTypeSeries {
		candidates = FilterEpisode(candidates, season, episode)
	}

	ranked := Rank(candidates)
	if len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}

	log.Printf("[aggregator] %s: returning %d streams", requestID, len(ranked))
	return renderStreams(ranked)
}

// fanOut queries every provider concurrently and waits for all of them to
// settle. Each provider call is independently bounded by the per-provider
// timeout and independently wrapped: a timeout, HTTP error or malformed
// payload degrades that provider to zero results without touching the rest.
// Batches come back in provider-table order so the merge is deterministic.
func (s *Service) fanOut(ctx context.Context, requestID, mediaType, query string) []ProviderResults {
	batches := make([]ProviderResults, len(s.providers))

	p := pool.New().WithContext(ctx)
	for i, src := range s.providers {
		i, src := i, src
		p.Go(func(ctx context.Context) error {
			pc := NewProviderClient(src, s.client, s.timeout)
			results, err := pc.Search(ctx, mediaType, query)
			if err != nil {
				log.Printf("[aggregator] %s: provider %s contributed nothing: %v", requestID, src.Key, err)
				return nil
			}
			batches[i] = ProviderResults{Source: src, Results: results}
			return nil
		})
	}
	_ = p.Wait()

	for i := range batches {
		if batches[i].Source.Key == "" {
			batches[i].Source = s.providers[i]
		}
	}
	return batches
}

// renderStreams derives the presentation fields for the final ranked list.
func renderStreams(candidates []models.CandidateStream) []models.RankedStream {
	out := make([]models.RankedStream, 0, len(candidates))
	for _, c := range candidates {
		symbol := QualitySymbol(c.Quality)
		sizeLabel := FormatSizeMB(c.SizeMB)

		nameParts := make([]string, 0, 4)
		for _, part := range []string{symbol, c.Quality, sizeLabel, c.SourceName} {
			if strings.TrimSpace(part) != "" {
				nameParts = append(nameParts, part)
			}
		}

		title := c.Filename + "\n🧲 " + c.SourceName
		if sizeLabel != "" {
			title += " | 💾 " + sizeLabel
		}

		out = append(out, models.RankedStream{
			CandidateStream: c,
			QualitySymbol:   symbol,
			Name:            strings.Join(nameParts, " | "),
			Title:           title,
		})
	}
	return out
}
