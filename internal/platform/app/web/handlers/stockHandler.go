package handlers

import (
	"io"
	"net/http"
	"time"

	"stocktracker_api/internal/platform/business/services/get"
	"stocktracker_api/pkg/logger"
)

type StockHandler struct {
	resolver *get.StockResolver
	log      logger.Logger
}

func NewStockHandler(resolver *get.StockResolver, writer io.Writer) *StockHandler {
	_log := logger.NewLogger(writer, "[StockHandler]")
	return &StockHandler{resolver: resolver, log: _log}
}

// ServeHTTP обслуживает GET /api/stocks?barcode=...
// quantity: число либо null -- "штрихкода нет в каталоге".
func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	quantity, err := h.resolver.Resolve(r.Context(), barcode)
	if err != nil {
		h.log.Log("stock resolution failed for %q: %v", barcode, err)
		writeError(w, err)
		return
	}
	h.log.Log("stock resolved for %q in %v", barcode, time.Since(startTime))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"quantity": quantity,
	})
}
