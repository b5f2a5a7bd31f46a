package aggregator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reQuality = regexp.MustCompile(`(?i)\b(2160p|1080p|720p|480p|4k|uhd|hdts|cam)\b`)
	reSize    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s?(gb|mb)\b`)
)

// MatchTokens pulls the first quality token and the first size expression
// out of a free-text release title. Either comes back empty when the title
// carries no recognizable token.
func MatchTokens(title string) (quality, size string) {
	if m := reQuality.FindString(title); m != "" {
		quality = m
	}
	if m := reSize.FindString(title); m != "" {
		size = m
	}
	return quality, size
}

// SizeToMB converts a size expression ("1.4 GB", "700MB") to megabytes.
// Unparseable input comes back as 0.
func SizeToMB(size string) float64 {
	m := reSize.FindStringSubmatch(size)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(m[2], "gb") {
		value *= 1024
	}
	return value
}

// QualitySymbol maps a raw quality string to its coarse presentation tier.
// Rules are checked in priority order; the first substring match wins.
func QualitySymbol(quality string) string {
	q := strings.ToLower(quality)
	switch {
	case strings.Contains(q, "2160"), strings.Contains(q, "4k"), strings.Contains(q, "uhd"):
		return "UltraHD"
	case strings.Contains(q, "1080"):
		return "FullHD"
	case strings.Contains(q, "720"):
		return "HD"
	case strings.Contains(q, "480"):
		return "SD"
	case strings.Contains(q, "cam"), strings.Contains(q, "hdts"):
		return "Cam"
	default:
		return "Unknown"
	}
}

// qualityTier maps a raw quality string to the numeric resolution bucket
// used as the primary ranking key. Cam and unrecognized qualities share the
// unranked bucket.
func qualityTier(quality string) int {
	q := strings.ToLower(quality)
	switch {
	case strings.Contains(q, "2160"), strings.Contains(q, "4k"), strings.Contains(q, "uhd"):
		return 2160
	case strings.Contains(q, "1080"):
		return 1080
	case strings.Contains(q, "720"):
		return 720
	case strings.Contains(q, "480"):
		return 480
	default:
		return 0
	}
}

// FormatSizeMB renders a megabyte count for display, switching to GB above
// 1024. Zero or negative sizes render as the empty string so callers can
// omit the field.
func FormatSizeMB(mb float64) string {
	if mb <= 0 {
		return ""
	}
	if mb >= 1024 {
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
	return fmt.Sprintf("%.0f MB", mb)
}
