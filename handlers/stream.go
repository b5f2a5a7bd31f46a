package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"magnetar/models"
	"magnetar/services/aggregator"
)

type aggregatorService interface {
	Fetch(ctx context.Context, mediaType, id string, season, episode int) []models.RankedStream
}

var _ aggregatorService = (*aggregator.Service)(nil)

// StreamHandler serves the thin addon surface in front of the aggregation
// pipeline: manifest metadata and the stream endpoint.
type StreamHandler struct {
	Service aggregatorService
	Version string
}

func NewStreamHandler(s aggregatorService, version string) *StreamHandler {
	if version == "" {
		version = "1.0.0"
	}
	return &StreamHandler{Service: s, Version: version}
}

// manifest describes the addon to stream clients.
type manifest struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
	Types       []string `json:"types"`
	IDPrefixes  []string `json:"idPrefixes"`
	Catalogs    []string `json:"catalogs"`
}

func (h *StreamHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, manifest{
		ID:          "community.magnetar",
		Version:     h.Version,
		Name:        "Magnetar",
		Description: "Aggregated torrent stream search across multiple providers",
		Resources:   []string{"stream"},
		Types:       []string{aggregator.MediaTypeMovie, aggregator.MediaTypeSeries},
		IDPrefixes:  []string{"tt", "tmdb-"},
		Catalogs:    []string{},
	})
}

// Stream handles GET /stream/{type}/{id}.json. For series the id segment is
// "id:season:episode"; season and episode are mandatory and their absence is
// a client error, not a silent default.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := vars["type"]
	rawID := strings.TrimSuffix(vars["id"], ".json")

	if mediaType != aggregator.MediaTypeMovie && mediaType != aggregator.MediaTypeSeries {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unsupported type"})
		return
	}

	id, season, episode, ok := splitStreamID(rawID)
	if mediaType == aggregator.MediaTypeSeries && (!ok || season <= 0 || episode <= 0) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "series requires id:season:episode"})
		return
	}

	ranked := h.Service.Fetch(r.Context(), mediaType, id, season, episode)

	items := make([]models.StreamItem, 0, len(ranked))
	for _, rs := range ranked {
		items = append(items, models.StreamItem{
			Name:          rs.Name,
			Title:         rs.Title,
			URL:           rs.MagnetURI,
			InfoHash:      rs.InfoHash,
			BehaviorHints: models.BehaviorHints{NotWebReady: true},
		})
	}

	writeJSON(w, http.StatusOK, map[string][]models.StreamItem{"streams": items})
}

// splitStreamID splits "tt123:2:5" into its id and episode parts. The ok
// result is false when the season/episode parts are present but unusable.
func splitStreamID(raw string) (id string, season, episode int, ok bool) {
	parts := strings.Split(raw, ":")
	id = parts[0]
	if len(parts) != 3 {
		return id, 0, 0, len(parts) == 1
	}
	season, errS := strconv.Atoi(parts[1])
	episode, errE := strconv.Atoi(parts[2])
	if errS != nil || errE != nil {
		return id, 0, 0, false
	}
	return id, season, episode, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
