package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"scholar-metrics-go/config"
	"scholar-metrics-go/internal/fetcher"
	"scholar-metrics-go/internal/handler"
	"scholar-metrics-go/internal/logging"
	"scholar-metrics-go/internal/metrics"
	"scholar-metrics-go/internal/service"
)

func main() {
	// 加载 .env 文件（如果存在）
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if envErr != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	m := metrics.NewMetrics("scholar", prometheus.DefaultRegisterer)

	scholarFetcher := fetcher.NewScholarFetcher(cfg.BaseURL, cfg.UserAgent, cfg.FetchTimeout)
	scholarService := service.NewScholarService(scholarFetcher, m)
	scholarHandler := handler.NewScholarHandler(scholarService)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("/health", scholarHandler.Health)
	mux.HandleFunc("/api/scholar/metrics", scholarHandler.Metrics)
	mux.HandleFunc("/api/scholar/sse", scholarHandler.AnalyzeSSE)
	mux.Handle("/metrics", promhttp.Handler())

	// CORS中间件
	corsHandler := corsMiddleware(mux)

	log.Info().Str("port", cfg.Port).Str("base_url", cfg.BaseURL).Msg("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
