package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"scholar-metrics-go/internal/fetcher"
	"scholar-metrics-go/internal/service"
	"scholar-metrics-go/internal/sse"
)

// ErrorKindHeader 失败时返回错误类型的响应头
const ErrorKindHeader = "X-Scrape-Error"

// ScholarHandler 学者指标HTTP处理器
type ScholarHandler struct {
	service *service.ScholarService
}

// NewScholarHandler 创建处理器
func NewScholarHandler(svc *service.ScholarService) *ScholarHandler {
	return &ScholarHandler{service: svc}
}

// Metrics 返回学者指标（YAML文本）
// GET /api/scholar/metrics?user=xxx
// POST /api/scholar/metrics  Body: {"query": "xxx"}
func (h *ScholarHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, err := readQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger := log.With().Str("component", "scholar_handler").Str("query", query).Logger()

	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")

	record, err := h.service.Analyze(r.Context(), query)
	if err != nil {
		w.Header().Set(ErrorKindHeader, service.Outcome(err))
		w.WriteHeader(statusFor(err))
		fmt.Fprint(w, err.Error())
		return
	}

	out, err := record.YAML()
	if err != nil {
		logger.Error().Err(err).Msg("serialize failed")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, out)
}

// AnalyzeSSE 处理SSE分析请求
// POST /api/scholar/sse
// Body: {"query": "xxx"}
func (h *ScholarHandler) AnalyzeSSE(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest

	// 解析JSON请求体
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	// 创建SSE writer
	writer, err := sse.NewWriter(w)
	if err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	defer writer.StopHeartbeat()

	logger := log.With().Str("component", "scholar_handler").Str("query", req.Query).Logger()
	logger.Info().Msg("starting SSE analysis")

	writer.SetQuery(req.Query)
	writer.SetAction("Fetching Google Scholar page...")

	record, err := h.service.Analyze(r.Context(), req.Query)
	if err != nil {
		writer.SendError(service.Outcome(err), err.Error())
		return
	}

	out, err := record.YAML()
	if err != nil {
		writer.SendError("serialize", err.Error())
		return
	}

	writer.Done(out)
	logger.Info().Msg("SSE analysis completed")
}

// Health 健康检查
func (h *ScholarHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readQuery 从 ?user= 或 JSON 请求体读取学者ID
func readQuery(r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		if user := r.URL.Query().Get("user"); user != "" {
			return user, nil
		}
		return "", errors.New("user is required")
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", errors.New("invalid request body")
	}
	if req.Query == "" {
		return "", errors.New("query is required")
	}
	return req.Query, nil
}

// statusFor 错误对应的HTTP状态码
func statusFor(err error) int {
	var se *fetcher.ScrapeError
	if errors.As(err, &se) {
		if se.Kind == fetcher.KindInvalidIdentifier {
			return http.StatusNotFound
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
