package web

import (
	"log"
	"net/http"

	handlers2 "stocktracker_api/internal/tracker/app/web/handlers"
	"stocktracker_api/metrics"
	"stocktracker_api/pkg/middleware"
)

func SetupRoutes(addr string, products *handlers2.ProductHandler, reports *handlers2.ReportHandler) {
	mux := http.NewServeMux()

	mux.Handle("/api/products", products)
	mux.Handle("/api/reports", reports)
	mux.Handle("/metrics", metrics.MetricsHandler())
	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Printf("Запущен сервис tracker /api/ на %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.PrometheusMiddleware(mux)))
}
