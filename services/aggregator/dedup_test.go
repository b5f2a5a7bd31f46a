package aggregator

import (
	"fmt"
	"strings"
	"testing"

	"magnetar/models"
)

func magnetFor(seed int) string {
	return fmt.Sprintf("magnet:?xt=urn:btih:%040x&dn=test", seed)
}

func TestInfoHashFromMagnet(t *testing.T) {
	tests := []struct {
		name     string
		magnet   string
		wantHash string
		wantOK   bool
	}{
		{
			name:     "lowercase hash",
			magnet:   "magnet:?xt=urn:btih:0123456789abcdef0123456789abcdef01234567&dn=x",
			wantHash: "0123456789abcdef0123456789abcdef01234567",
			wantOK:   true,
		},
		{
			name:     "uppercase hash is lowercased",
			magnet:   "magnet:?xt=urn:btih:0123456789ABCDEF0123456789ABCDEF01234567",
			wantHash: "0123456789abcdef0123456789abcdef01234567",
			wantOK:   true,
		},
		{
			name:   "truncated hash",
			magnet: "magnet:?xt=urn:btih:abcdef",
			wantOK: false,
		},
		{
			name:   "not a magnet",
			magnet: "https://example.com/file.torrent",
			wantOK: false,
		},
		{
			name:   "empty",
			magnet: "",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hash, ok := InfoHashFromMagnet(tc.magnet)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && hash != tc.wantHash {
				t.Errorf("expected hash %q, got %q", tc.wantHash, hash)
			}
		})
	}
}

func TestMergeFirstSeenWins(t *testing.T) {
	shared := "magnet:?xt=urn:btih:0123456789abcdef0123456789abcdef01234567"
	sharedUpper := "magnet:?xt=urn:btih:0123456789ABCDEF0123456789ABCDEF01234567"

	batches := []ProviderResults{
		{
			Source: models.ProviderSource{Key: "a", DisplayName: "Alpha"},
			Results: []models.RawResult{
				{MagnetLink: shared, Title: "First.Copy.1080p", Quality: "1080p"},
			},
		},
		{
			Source: models.ProviderSource{Key: "b", DisplayName: "Beta"},
			Results: []models.RawResult{
				{MagnetLink: sharedUpper, Title: "Second.Copy.720p", Quality: "720p"},
			},
		},
	}

	merged := Merge(batches)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged candidate, got %d", len(merged))
	}
	if merged[0].Quality != "1080p" {
		t.Errorf("expected first occurrence's quality to win, got %q", merged[0].Quality)
	}
	if merged[0].SourceName != "Alpha" {
		t.Errorf("expected first occurrence's source to win, got %q", merged[0].SourceName)
	}
}

func TestMergeSkipsMalformedMagnets(t *testing.T) {
	batches := []ProviderResults{
		{
			Source: models.ProviderSource{Key: "a", DisplayName: "Alpha"},
			Results: []models.RawResult{
				{MagnetLink: "magnet:?xt=urn:btih:short", Title: "Broken"},
				{MagnetLink: "", Title: "Missing"},
				{MagnetLink: magnetFor(1), Title: "Fine.1080p"},
			},
		},
	}

	merged := Merge(batches)
	if len(merged) != 1 {
		t.Fatalf("expected only the well-formed magnet to survive, got %d", len(merged))
	}
}

func TestMergeDerivesMissingFields(t *testing.T) {
	tests := []struct {
		name         string
		raw          models.RawResult
		wantQuality  string
		wantSizeMB   float64
		wantFilename string
	}{
		{
			name: "explicit fields preserved",
			raw: models.RawResult{
				MagnetLink: magnetFor(1),
				Title:      "Ignored.720p 1 GB",
				Filename:   "explicit.mkv",
				Quality:    "2160p",
				Size:       float64(15000),
			},
			wantQuality:  "2160p",
			wantSizeMB:   15000,
			wantFilename: "explicit.mkv",
		},
		{
			name: "quality and size derived from title",
			raw: models.RawResult{
				MagnetLink: magnetFor(2),
				Title:      "Show.S01E01.1080p.WEB 2.5 GB",
			},
			wantQuality:  "1080p",
			wantSizeMB:   2560,
			wantFilename: "Show.S01E01.1080p.WEB 2.5 GB",
		},
		{
			name: "filename from first title line",
			raw: models.RawResult{
				MagnetLink: magnetFor(3),
				Title:      "Movie.720p.mkv\nsecond line",
			},
			wantQuality:  "720p",
			wantFilename: "Movie.720p.mkv",
		},
		{
			name: "placeholder when nothing usable",
			raw: models.RawResult{
				MagnetLink: magnetFor(4),
			},
			wantFilename: "Unknown",
		},
		{
			name: "string size coerced",
			raw: models.RawResult{
				MagnetLink: magnetFor(5),
				Title:      "Plain",
				Size:       "1.5 GB",
			},
			wantSizeMB:   1536,
			wantFilename: "Plain",
		},
		{
			name: "bare numeric string size taken as MB",
			raw: models.RawResult{
				MagnetLink: magnetFor(6),
				Title:      "Plain",
				Size:       "850",
			},
			wantSizeMB:   850,
			wantFilename: "Plain",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			merged := Merge([]ProviderResults{{
				Source:  models.ProviderSource{Key: "a", DisplayName: "Alpha"},
				Results: []models.RawResult{tc.raw},
			}})
			if len(merged) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(merged))
			}
			got := merged[0]
			if !strings.EqualFold(got.Quality, tc.wantQuality) {
				t.Errorf("quality: expected %q, got %q", tc.wantQuality, got.Quality)
			}
			if got.SizeMB != tc.wantSizeMB {
				t.Errorf("sizeMB: expected %v, got %v", tc.wantSizeMB, got.SizeMB)
			}
			if got.Filename != tc.wantFilename {
				t.Errorf("filename: expected %q, got %q", tc.wantFilename, got.Filename)
			}
		})
	}
}
