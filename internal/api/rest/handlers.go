package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/victoria/internal/service"
)

// databaseHealth and cacheHealth are the probe surfaces the health
// endpoint consults.
type databaseHealth interface {
	HealthCheck() error
}

type cacheHealth interface {
	HealthCheck(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db      databaseHealth
	cache   cacheHealth
	seasons *service.SeasonService
}

// NewHandler creates a new handler
func NewHandler(db databaseHealth, rc cacheHealth, seasons *service.SeasonService) *Handler {
	return &Handler{
		db:      db,
		cache:   rc,
		seasons: seasons,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	components := map[string]string{
		"database": "healthy",
		"redis":    "healthy",
	}

	if err := h.db.HealthCheck(); err != nil {
		components["database"] = "unhealthy"
	}
	if err := h.cache.HealthCheck(r.Context()); err != nil {
		components["redis"] = "unhealthy"
	}
	for _, c := range components {
		if c != "healthy" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, map[string]interface{}{
		"status":     status,
		"service":    "victoria",
		"version":    "1.0.0",
		"components": components,
	})
}

// ProcessSeason triggers a processing run for a season
func (h *Handler) ProcessSeason(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	run, err := h.seasons.Process(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Season processing failed", err)
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// GetLatestRun returns the most recent processing run for a season
func (h *Handler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	run, err := h.seasons.GetLatestRun(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch run", err)
		return
	}
	if run == nil {
		respondError(w, http.StatusNotFound, "Season has not been processed", nil)
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// GetSeasonReport returns the cached full report for a season
func (h *Handler) GetSeasonReport(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	report, err := h.seasons.GetCachedReport(r.Context(), seasonID)
	if errors.Is(err, redis.Nil) {
		respondError(w, http.StatusNotFound, "No cached report for season", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch report", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetPlayers returns a season's player totals
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	players, err := h.seasons.GetPlayers(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player totals", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":  seasonID,
		"players": players,
		"count":   len(players),
	})
}

// GetTeams returns a season's team totals
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	teams, err := h.seasons.GetTeams(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team totals", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season": seasonID,
		"teams":  teams,
		"count":  len(teams),
	})
}

// GetSubstitutions returns a season's substitution events
func (h *Handler) GetSubstitutions(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	events, err := h.seasons.GetSubstitutions(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch substitution events", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":        seasonID,
		"substitutions": events,
		"count":         len(events),
	})
}

// GetPairings returns a season's substitution pairing table
func (h *Handler) GetPairings(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	pairings, err := h.seasons.GetPairings(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch pairings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":   seasonID,
		"pairings": pairings,
		"count":    len(pairings),
	})
}

// GetPlayerFrequency returns per-player substitution volume
func (h *Handler) GetPlayerFrequency(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	players, err := h.seasons.GetPlayerFrequency(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player frequency", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":  seasonID,
		"players": players,
		"count":   len(players),
	})
}

// GetTimingPatterns returns substitution volume by period and clock window
func (h *Handler) GetTimingPatterns(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	buckets, err := h.seasons.GetTimingPatterns(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch timing patterns", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season": seasonID,
		"timing": buckets,
		"count":  len(buckets),
	})
}

// GetSituations returns substitutions grouped by score situation
func (h *Handler) GetSituations(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	situations, err := h.seasons.GetSituations(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch situations", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":     seasonID,
		"situations": situations,
		"count":      len(situations),
	})
}

// GetPeriodTransitions returns substitutions made at period starts
func (h *Handler) GetPeriodTransitions(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	transitions, err := h.seasons.GetPeriodTransitions(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch period transitions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":      seasonID,
		"transitions": transitions,
		"count":       len(transitions),
	})
}

// GetMassSubstitutions returns multi-player substitution occurrences
func (h *Handler) GetMassSubstitutions(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	mass, err := h.seasons.GetMassSubstitutions(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch mass substitutions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season": seasonID,
		"mass":   mass,
		"count":  len(mass),
	})
}

// GetAssistNetwork returns the full assist network
func (h *Handler) GetAssistNetwork(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	network, err := h.seasons.GetAssistNetwork(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch assist network", err)
		return
	}

	respondJSON(w, http.StatusOK, network)
}

// GetAssistLeaders returns the per-assister rollup
func (h *Handler) GetAssistLeaders(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	network, err := h.seasons.GetAssistNetwork(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch assist leaders", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":  seasonID,
		"leaders": network.Leaders,
		"count":   len(network.Leaders),
	})
}

// GetAssistReceivers returns the per-scorer rollup
func (h *Handler) GetAssistReceivers(w http.ResponseWriter, r *http.Request) {
	seasonID := mux.Vars(r)["season"]

	network, err := h.seasons.GetAssistNetwork(r.Context(), seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch assist receivers", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":    seasonID,
		"receivers": network.Receivers,
		"count":     len(network.Receivers),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
