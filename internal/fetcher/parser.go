package fetcher

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"scholar-metrics-go/internal/model"
)

// minSummaryValues 汇总表至少需要的数值个数（总引用、h-index、i10-index）
const minSummaryValues = 3

// ScholarParser Google Scholar HTML解析器
type ScholarParser struct {
	selectors *Selectors
}

// NewScholarParser 使用默认结构规则创建解析器
func NewScholarParser() *ScholarParser {
	return &ScholarParser{selectors: DefaultSelectors}
}

// NewScholarParserWithSelectors 使用指定结构规则创建解析器
func NewScholarParserWithSelectors(selectors *Selectors) *ScholarParser {
	return &ScholarParser{selectors: selectors}
}

// Parse 从文档构建完整记录，任何一步失败都直接返回错误
func (p *ScholarParser) Parse(doc *goquery.Document) (*model.AuthorRecord, error) {
	summary, err := p.ExtractSummary(doc)
	if err != nil {
		return nil, err
	}

	yearly, err := p.ExtractHistogram(doc)
	if err != nil {
		return nil, err
	}

	return model.NewAuthorRecord(summary, yearly), nil
}

// ParseHTML 解析HTML字符串
func (p *ScholarParser) ParseHTML(htmlContent string) (*model.AuthorRecord, error) {
	doc, err := parseDocument(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	return p.Parse(doc)
}

// ExtractSummary 解析名字、总引用、h-index、i10-index
// 汇总表的第二列按顺序依次是 总引用、h-index、i10-index，不看行标签
func (p *ScholarParser) ExtractSummary(doc *goquery.Document) (model.Summary, error) {
	table, ok := locateFirst(doc.Selection, p.selectors.SummaryTable)
	if !ok {
		return model.Summary{}, ErrTableNotFound
	}

	cells := table.FindMatcher(p.selectors.SummaryValues)
	values := make([]int, 0, cells.Length())
	for i := range cells.Nodes {
		raw := cells.Eq(i).Text()
		value, ok := parseNumeric(raw)
		if !ok {
			return model.Summary{}, newParseError(raw)
		}
		values = append(values, value)
	}

	if len(values) < minSummaryValues {
		return model.Summary{}, newInsufficientDataError(len(values))
	}

	name, ok := locateFirst(doc.Selection, p.selectors.Name)
	if !ok {
		return model.Summary{}, ErrNameNotFound
	}

	return model.Summary{
		Name:     name.Text(),
		Total:    values[0],
		HIndex:   values[1],
		I10Index: values[2],
	}, nil
}

// ExtractHistogram 解析年度引用
// 年份和引用数按位置配对，数量不一致时截断到较短的一方
func (p *ScholarParser) ExtractHistogram(doc *goquery.Document) (model.YearlyCitations, error) {
	hist, ok := locateFirst(doc.Selection, p.selectors.Histogram)
	if !ok {
		return nil, ErrTableNotFound
	}

	years := hist.FindMatcher(p.selectors.HistogramYears)
	counts := hist.FindMatcher(p.selectors.HistogramCitations)

	n := min(years.Length(), counts.Length())
	if years.Length() != counts.Length() {
		log.Debug().
			Str("component", "scholar_parser").
			Int("years", years.Length()).
			Int("citations", counts.Length()).
			Msg("histogram label count mismatch, truncating")
	}

	yearly := make(model.YearlyCitations, n)
	for i := 0; i < n; i++ {
		rawYear := years.Eq(i).Text()
		year, ok := parseNumeric(rawYear)
		if !ok {
			return nil, newYearParseError(rawYear)
		}

		rawCount := counts.Eq(i).Text()
		count, ok := parseNumeric(rawCount)
		if !ok {
			return nil, newCitationParseError(rawCount)
		}

		yearly[year] = count
	}

	return yearly, nil
}

// parseNumeric 解析十进制非负整数，不允许符号、空白和千位分隔符
func parseNumeric(raw string) (int, bool) {
	v, err := strconv.ParseUint(raw, 10, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// parseDocument 容错解析HTML，畸形标记不会报错，只有读取失败才返回错误
func parseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
