package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"stocktracker_api/internal/platform/business/services"
	"stocktracker_api/internal/platform/storage"
	"stocktracker_api/pkg/logger"
)

// TokenHandler -- CRUD для bearer-токенов панелей. Сюда их приносит
// расширение-перехватчик; сам механизм перехвата вне этого сервиса.
type TokenHandler struct {
	repo *storage.TokenRepository
	log  logger.Logger
}

func NewTokenHandler(repo *storage.TokenRepository, writer io.Writer) *TokenHandler {
	_log := logger.NewLogger(writer, "[TokenHandler]")
	return &TokenHandler{repo: repo, log: _log}
}

type tokenRequest struct {
	Panel string `json:"panel"`
	Token string `json:"token"`
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost, http.MethodPut:
		h.save(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TokenHandler) list(w http.ResponseWriter, r *http.Request) {
	infos, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Log("failed to list tokens: %v", err)
		http.Error(w, "failed to list tokens", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tokens":  infos,
	})
}

func (h *TokenHandler) save(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "failed to decode request body")
		return
	}

	panel := services.Panel(strings.TrimSpace(req.Panel))
	token := strings.TrimSpace(req.Token)
	if !panel.Valid() {
		writeBadRequest(w, `panel must be "retail" or "warehouse"`)
		return
	}
	if token == "" {
		writeBadRequest(w, "token must not be empty")
		return
	}

	if err := h.repo.Save(r.Context(), panel, token); err != nil {
		h.log.Log("failed to save token: %v", err)
		http.Error(w, "failed to save token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
