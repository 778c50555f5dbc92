package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"stocktracker_api/internal/tracker/internal/business"
	"stocktracker_api/internal/tracker/internal/models/requests"
	"stocktracker_api/pkg/logger"
)

type ReportHandler struct {
	service *business.ReportService
	log     logger.Logger
}

func NewReportHandler(service *business.ReportService, writer io.Writer) *ReportHandler {
	_log := logger.NewLogger(writer, "[ReportHandler]")
	return &ReportHandler{service: service, log: _log}
}

func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReportHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reports, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "failed to fetch reports", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reports)
}

func (h *ReportHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req requests.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "failed to decode request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.log.Log("report submit failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}
