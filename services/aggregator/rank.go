package aggregator

import (
	"math"
	"sort"

	"magnetar/models"
)

type sizeRange struct {
	min, max float64
}

// idealSizes is the plausible file-size window (in MB) for each quality
// tier. Providers sometimes mislabel quality, so size acts as a secondary
// corroborating signal: a "1080p" release of 80 MB is almost certainly fake
// or incomplete, and one of 60 GB probably is not 1080p.
var idealSizes = map[int]sizeRange{
	2160: {10000, 80000},
	1080: {2000, 16000},
	720:  {1000, 8000},
	480:  {500, 4000},
	0:    {0, math.Inf(1)},
}

// sizeFit scores how plausible a size is for its tier: zero inside the
// ideal range, otherwise the distance to the nearest boundary. Lower is
// better.
func sizeFit(tier int, sizeMB float64) float64 {
	r := idealSizes[tier]
	switch {
	case sizeMB < r.min:
		return r.min - sizeMB
	case sizeMB > r.max:
		return sizeMB - r.max
	default:
		return 0
	}
}

// Rank orders candidates best-first: higher quality tier, then closer to
// the tier's ideal size window, then plain larger. The sort is stable so
// identical inputs always produce identical output.
func Rank(candidates []models.CandidateStream) []models.CandidateStream {
	out := make([]models.CandidateStream, len(candidates))
	copy(out, candidates)

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := qualityTier(out[i].Quality), qualityTier(out[j].Quality)
		if ti != tj {
			return ti > tj
		}
		fi, fj := sizeFit(ti, out[i].SizeMB), sizeFit(tj, out[j].SizeMB)
		if fi != fj {
			return fi < fj
		}
		return out[i].SizeMB > out[j].SizeMB
	})
	return out
}
