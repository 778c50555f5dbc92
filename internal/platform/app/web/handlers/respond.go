package handlers

import (
	"encoding/json"
	"net/http"

	"stocktracker_api/internal/platform/business/errs"
)

// Единый контракт ответов обслуживающих эндпоинтов: success плюс error/code
// при отказе, HTTP-статус зеркалит вид ошибки.

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// заголовки уже ушли, остается только залогировать
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   err.Error(),
		"code":    errs.KindOf(err).String(),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   msg,
		"code":    "BAD_REQUEST",
	})
}
