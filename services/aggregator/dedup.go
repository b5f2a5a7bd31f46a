package aggregator

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"magnetar/models"
)

// unknownFilename is the placeholder used when neither an explicit filename
// nor a usable title line is available.
const unknownFilename = "Unknown"

var reBTIH = regexp.MustCompile(`(?i)btih:([0-9a-f]{40})`)

// ProviderResults pairs one provider with the raw results it returned for a
// single request.
type ProviderResults struct {
	Source  models.ProviderSource
	Results []models.RawResult
}

// InfoHashFromMagnet extracts the lowercase 40-char hex btih digest from a
// magnet URI.
func InfoHashFromMagnet(magnet string) (string, bool) {
	m := reBTIH.FindStringSubmatch(magnet)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// Merge flattens per-provider raw results into unique candidates keyed by
// info hash. First seen wins: a later duplicate is dropped no matter which
// provider it came from, keeping the first occurrence's filename, quality
// and size. Raw results without a well-formed btih hash are skipped.
func Merge(batches []ProviderResults) []models.CandidateStream {
	seen := make(map[string]struct{})
	var out []models.CandidateStream

	for _, batch := range batches {
		for _, raw := range batch.Results {
			hash, ok := InfoHashFromMagnet(raw.MagnetLink)
			if !ok {
				log.Printf("[dedup] %s: skipping result with malformed magnet (title=%q)", batch.Source.Key, firstLine(raw.Title))
				continue
			}
			if _, dup := seen[hash]; dup {
				continue
			}
			seen[hash] = struct{}{}
			out = append(out, normalize(raw, hash, batch.Source))
		}
	}
	return out
}

// normalize builds a CandidateStream from a raw provider result, deriving
// quality, size and filename from the title text when the provider did not
// supply them explicitly.
func normalize(raw models.RawResult, hash string, source models.ProviderSource) models.CandidateStream {
	titleQuality, titleSize := MatchTokens(raw.Title)

	quality := strings.TrimSpace(raw.Quality)
	if quality == "" {
		quality = titleQuality
	}

	sizeMB := coerceSize(raw.Size)
	if sizeMB == 0 {
		sizeMB = SizeToMB(titleSize)
	}

	filename := strings.TrimSpace(raw.Filename)
	if filename == "" {
		filename = firstLine(raw.Title)
	}
	if filename == "" {
		filename = unknownFilename
	}

	displayTitle := strings.TrimSpace(raw.Title)
	if displayTitle == "" {
		displayTitle = filename
	}

	return models.CandidateStream{
		InfoHash:     hash,
		MagnetURI:    raw.MagnetLink,
		Filename:     filename,
		DisplayTitle: displayTitle,
		Quality:      quality,
		SizeMB:       sizeMB,
		SourceName:   source.DisplayName,
	}
}

// coerceSize normalizes a provider's loosely typed size field to megabytes.
// Numbers are taken as MB; strings are parsed as either a size expression
// ("1.4 GB") or a bare MB count.
func coerceSize(v interface{}) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		if val > 0 {
			return val
		}
	case string:
		if mb := SizeToMB(val); mb > 0 {
			return mb
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
