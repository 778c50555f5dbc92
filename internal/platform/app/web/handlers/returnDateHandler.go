package handlers

import (
	"io"
	"net/http"
	"time"

	"stocktracker_api/internal/platform/business/services/get"
	"stocktracker_api/pkg/logger"
)

type ReturnDateHandler struct {
	resolver *get.ReturnWindowResolver
	log      logger.Logger
}

func NewReturnDateHandler(resolver *get.ReturnWindowResolver, writer io.Writer) *ReturnDateHandler {
	_log := logger.NewLogger(writer, "[ReturnDateHandler]")
	return &ReturnDateHandler{resolver: resolver, log: _log}
}

// ServeHTTP обслуживает GET /api/supplier-return-date?barcode=...
func (h *ReturnDateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		writeBadRequest(w, "barcode query parameter is required")
		return
	}

	startTime := time.Now()
	days, err := h.resolver.Resolve(r.Context(), barcode)
	if err != nil {
		h.log.Log("return-date resolution failed for %q: %v", barcode, err)
		writeError(w, err)
		return
	}
	h.log.Log("return date resolved for %q in %v", barcode, time.Since(startTime))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"days":    days,
	})
}
