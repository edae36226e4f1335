package fetcher

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// DocumentFetcher 获取学者主页并解析为文档
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, scholarID string) (*goquery.Document, error)
}
