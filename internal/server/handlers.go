package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/pkg/utils"
)

type respondRequest struct {
	Query    string               `json:"query"`
	Location *models.Location     `json:"location,omitempty"`
	History  []models.ChatMessage `json:"history,omitempty"`
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("respond request", zap.String("query", req.Query), zap.Bool("has_location", req.Location != nil))
	s.respondJSON(w, http.StatusOK, s.assistant.Respond(r.Context(), req.Query, req.Location, req.History))
}

// maxBatchQueries caps the queries accepted by one batch request.
const maxBatchQueries = 50

type batchRequest struct {
	Queries  []string         `json:"queries"`
	Location *models.Location `json:"location,omitempty"`
}

func (s *Server) handleRespondBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Queries) > maxBatchQueries {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("at most %d queries per batch", maxBatchQueries))
		return
	}
	results, err := s.assistant.RespondAll(r.Context(), req.Queries, req.Location, s.config.BatchWorkers)
	if err != nil {
		s.logger.Error("batch respond failed", zap.Int("queries", len(req.Queries)), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "batch failed")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	if category == "" {
		s.respondError(w, http.StatusBadRequest, "category is required")
		return
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "lon must be a number")
		return
	}
	tier, err := models.ParsePriceTier(q.Get("tier"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc := models.Location{Latitude: lat, Longitude: lon, Address: q.Get("address")}
	providers := s.assistant.SearchByCategory(r.Context(), category, loc, tier)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"providers": providers})
}

func (s *Server) handleProviderDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondJSON(w, http.StatusOK, s.assistant.ProviderDetails(r.Context(), id))
}

// handleCategories lists the popular categories, or with ?address= only
// those offered in that locality.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	popular := s.assistant.PopularCategories()
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": popular})
		return
	}

	byID := make(map[string]models.Category, len(popular))
	for _, c := range popular {
		byID[c.ID] = c
	}
	offered := s.assistant.Categories(r.Context(), address)
	out := make([]models.Category, 0, len(offered))
	for _, id := range offered {
		c, ok := byID[id]
		if !ok {
			c = models.Category{ID: id, DisplayName: utils.Capitalize(id)}
		}
		out = append(out, c)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"address": address, "categories": out})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("q"))
	if text == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"providers": s.assistant.Lookup(r.Context(), text, limit)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.assistant.Status(r.Context())
	if err != nil {
		s.logger.Error("status failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
