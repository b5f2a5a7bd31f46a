package aggregator

import (
	"regexp"
	"strconv"

	"magnetar/models"
)

var (
	reCombinedSE = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,2})\b`)
	reSeasonTok  = regexp.MustCompile(`(?i)\bS(\d{1,2})\b`)
	reEpisodeTok = regexp.MustCompile(`(?i)\bE(\d{1,2})\b`)
)

// MatchesEpisode reports whether a release title unambiguously refers to the
// requested season and episode. A combined SxxExx token is the single source
// of truth when present. Otherwise the title must carry exactly one
// standalone season token and exactly one standalone episode token, each
// equal to the requested value; titles with several season or episode tokens
// (season packs, batches) are rejected rather than guessed at.
func MatchesEpisode(text string, season, episode int) bool {
	if m := reCombinedSE.FindStringSubmatch(text); m != nil {
		s, _ := strconv.Atoi(m[1])
		e, _ := strconv.Atoi(m[2])
		return s == season && e == episode
	}

	seasons := reSeasonTok.FindAllStringSubmatch(text, -1)
	episodes := reEpisodeTok.FindAllStringSubmatch(text, -1)
	if len(seasons) != 1 || len(episodes) != 1 {
		return false
	}
	s, _ := strconv.Atoi(seasons[0][1])
	e, _ := strconv.Atoi(episodes[0][1])
	return s == season && e == episode
}

// FilterEpisode keeps the candidates whose filename or display title match
// the requested episode. Providers do not reliably honor episode queries, so
// this filter is re-applied after the merge regardless of what was asked.
func FilterEpisode(candidates []models.CandidateStream, season, episode int) []models.CandidateStream {
	out := make([]models.CandidateStream, 0, len(candidates))
	for _, c := range candidates {
		if MatchesEpisode(c.Filename, season, episode) || MatchesEpisode(c.DisplayTitle, season, episode) {
			out = append(out, c)
		}
	}
	return out
}
