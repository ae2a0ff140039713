package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tubetrail/tubetrail/internal/loader"
	"github.com/tubetrail/tubetrail/internal/models"
	"github.com/tubetrail/tubetrail/pkg/tube"
)

// Handler handles HTTP requests
type Handler struct {
	client tube.Client
}

// NewHandler creates a new HTTP handler
func NewHandler(client tube.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/journeys/{word}", h.handleJourneys).Methods("GET")
	r.HandleFunc("/stations/{word}", h.handleStations).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "tubetrail",
		"readme": "GET /journeys/{word} for the longest letter-avoiding journeys",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

// policyFrom maps the refresh query parameter onto a cache policy
func policyFrom(r *http.Request) loader.Policy {
	if r.URL.Query().Get("refresh") == "1" {
		return loader.ForceRefresh
	}
	return loader.UseCacheIfPresent
}

func (h *Handler) handleJourneys(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	result, err := h.client.Run(r.Context(), word, policyFrom(r))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	response := Response{
		Data:    result,
		Updated: h.client.LastUpdate().Format(time.RFC3339),
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	stations, err := h.client.Stations(r.Context(), word, policyFrom(r))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	response := Response{
		Data:    stations,
		Updated: h.client.LastUpdate().Format(time.RFC3339),
	}
	h.writeJSON(w, response)
}

func (h *Handler) writeQueryError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrSourceUnavailable) || errors.Is(err, models.ErrBadNetworkData) {
		status = http.StatusBadGateway
	}
	h.writeError(w, err.Error(), status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
