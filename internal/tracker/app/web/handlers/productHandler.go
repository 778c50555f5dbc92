package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"stocktracker_api/internal/tracker/internal/business"
	"stocktracker_api/internal/tracker/internal/models"
	"stocktracker_api/internal/tracker/internal/models/requests"
	"stocktracker_api/pkg/logger"
)

type ProductHandler struct {
	service *business.ProductService
	log     logger.Logger
}

func NewProductHandler(service *business.ProductService, writer io.Writer) *ProductHandler {
	_log := logger.NewLogger(writer, "[ProductHandler]")
	return &ProductHandler{service: service, log: _log}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	if barcode := r.URL.Query().Get("barcode"); barcode != "" {
		product, err := h.service.GetByBarcode(r.Context(), barcode)
		if err != nil {
			http.Error(w, "failed to fetch product", http.StatusInternalServerError)
			return
		}
		if product == nil {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(product)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	products, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "failed to fetch products", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(products)
}

func (h *ProductHandler) save(w http.ResponseWriter, r *http.Request) {
	var req requests.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "failed to decode request body", http.StatusBadRequest)
		return
	}

	product := models.Product{
		Barcode:           req.Barcode,
		Name:              req.Name,
		Brand:             req.Brand,
		Category:          req.Category,
		PlatformProductID: req.PlatformProductID,
	}
	if err := h.service.Save(r.Context(), product); err != nil {
		h.log.Log("product save failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
