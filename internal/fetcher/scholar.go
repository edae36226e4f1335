package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL Google Scholar 地址
const DefaultBaseURL = "https://scholar.google.com"

// ScholarFetcher Google Scholar 主页获取器
// 只发起一次GET，不重试、不缓存
type ScholarFetcher struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewScholarFetcher 创建获取器
// timeout 为0时不设置超时，取消由调用方的context控制
func NewScholarFetcher(baseURL, userAgent string, timeout time.Duration) *ScholarFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ScholarFetcher{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ProfileURL 学者主页地址，ID原样拼接
func (f *ScholarFetcher) ProfileURL(scholarID string) string {
	return fmt.Sprintf("%s/citations?user=%s", f.baseURL, scholarID)
}

// FetchDocument 获取学者主页并解析为文档
// 非2xx状态返回 ErrInvalidIdentifier，网络错误原样包装返回
func (f *ScholarFetcher) FetchDocument(ctx context.Context, scholarID string) (*goquery.Document, error) {
	pageURL := f.ProfileURL(scholarID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().
			Str("component", "scholar_fetcher").
			Str("url", pageURL).
			Int("status", resp.StatusCode).
			Msg("non-success status")
		return nil, ErrInvalidIdentifier
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return doc, nil
}
