package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scholar-metrics-go/internal/fetcher"
	"scholar-metrics-go/internal/metrics"
	"scholar-metrics-go/internal/model"
)

// ScholarService 学者引用指标服务
// 每次调用都从零开始：获取页面 -> 解析 -> 组装记录，调用之间不共享可变状态
type ScholarService struct {
	fetcher fetcher.DocumentFetcher
	parser  *fetcher.ScholarParser
	metrics *metrics.Metrics
}

// NewScholarService 创建服务，m 可以为 nil
func NewScholarService(f fetcher.DocumentFetcher, m *metrics.Metrics) *ScholarService {
	return &ScholarService{
		fetcher: f,
		parser:  fetcher.NewScholarParser(),
		metrics: m,
	}
}

// Analyze 获取并解析学者指标
// 错误不做任何恢复或重试，页面结构错误为 *fetcher.ScrapeError
func (s *ScholarService) Analyze(ctx context.Context, scholarID string) (*model.AuthorRecord, error) {
	logger := log.With().Str("component", "scholar_service").Str("scholar_id", scholarID).Logger()
	logger.Debug().Msg("analyze started")

	start := time.Now()
	doc, err := s.fetcher.FetchDocument(ctx, scholarID)
	s.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		s.fail(logger, err)
		return nil, err
	}

	record, err := s.parser.Parse(doc)
	if err != nil {
		s.fail(logger, err)
		return nil, err
	}

	s.metrics.RecordScrape(metrics.OutcomeOK)
	logger.Info().
		Str("name", record.Name).
		Int("total", record.Total).
		Int("h_index", record.HIndex).
		Int("i10_index", record.I10Index).
		Int("years", len(record.YearlyCitations)).
		Msg("analyze completed")

	return record, nil
}

// Render 返回序列化后的记录，失败时返回错误描述，不会返回错误
func (s *ScholarService) Render(ctx context.Context, scholarID string) string {
	record, err := s.Analyze(ctx, scholarID)
	if err != nil {
		return err.Error()
	}

	out, err := record.YAML()
	if err != nil {
		return err.Error()
	}
	return out
}

func (s *ScholarService) fail(logger zerolog.Logger, err error) {
	outcome := Outcome(err)
	s.metrics.RecordScrape(outcome)
	logger.Warn().Err(err).Str("outcome", outcome).Msg("analyze failed")
}

// Outcome 错误分类标签: ok、transport 或抓取错误类型
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var se *fetcher.ScrapeError
	if errors.As(err, &se) {
		return se.Kind.String()
	}
	return metrics.OutcomeTransport
}
