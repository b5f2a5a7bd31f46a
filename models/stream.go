package models

// ProviderSource identifies one upstream search provider. The provider set
// is fixed for the lifetime of the process; adding or removing providers is
// purely a configuration change.
type ProviderSource struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	DisplayName string `json:"displayName"`
}

// RawResult is a provider's unnormalized payload for a single torrent.
// Everything except the magnet link is optional. Size stays loose on purpose
// because providers disagree on whether it is a number or a human-readable
// string; it is coerced during deduplication.
type RawResult struct {
	MagnetLink string      `json:"magnetLink"`
	Title      string      `json:"title"`
	Filename   string      `json:"filename"`
	Quality    string      `json:"quality"`
	Size       interface{} `json:"size"`
}

// CandidateStream is the normalized entity produced by deduplication.
// InfoHash is the lowercase hex btih digest from the magnet URI and uniquely
// identifies the torrent regardless of which provider returned it.
type CandidateStream struct {
	InfoHash     string
	MagnetURI    string
	Filename     string
	DisplayTitle string
	Quality      string
	SizeMB       float64
	SourceName   string
}

// RankedStream is a CandidateStream plus presentation fields derived at the
// final pipeline stage. It is never persisted.
type RankedStream struct {
	CandidateStream
	QualitySymbol string
	Name          string
	Title         string
}

// BehaviorHints carries playback hints for the downstream player.
type BehaviorHints struct {
	NotWebReady bool `json:"notWebReady"`
}

// StreamItem is the rendered output shape consumed by a downstream player.
type StreamItem struct {
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	URL           string        `json:"url"`
	InfoHash      string        `json:"infoHash"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}
