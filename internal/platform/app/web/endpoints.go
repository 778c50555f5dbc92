package web

import (
	"log"
	"net/http"

	handlers2 "stocktracker_api/internal/platform/app/web/handlers"
	"stocktracker_api/metrics"
	"stocktracker_api/pkg/middleware"
)

func SetupRoutes(addr string, stocks *handlers2.StockHandler, returnDate *handlers2.ReturnDateHandler, tokens *handlers2.TokenHandler) {
	mux := http.NewServeMux()

	mux.Handle("/api/stocks", stocks)
	mux.Handle("/api/supplier-return-date", returnDate)
	mux.Handle("/api/tokens", tokens)
	mux.Handle("/metrics", metrics.MetricsHandler())
	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Printf("Запущен сервис platform /api/ на %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.PrometheusMiddleware(mux)))
}
