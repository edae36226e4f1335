package fetcher

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// SelectorRules 页面结构规则（CSS选择器）
// 与 Google Scholar 页面结构的约定，页面改版时只需替换这里
type SelectorRules struct {
	SummaryTable       string // 引用汇总表
	SummaryValues      string // 汇总表内的数值单元格（第二列），相对于汇总表
	Name               string // 学者名字
	Histogram          string // 年度引用图表
	HistogramYears     string // 图表内的年份标签，相对于图表
	HistogramCitations string // 图表内的引用数标签，相对于图表
}

// DefaultSelectorRules Google Scholar 个人主页的结构规则
var DefaultSelectorRules = SelectorRules{
	SummaryTable:       "table#gsc_rsb_st",
	SummaryValues:      "tr > td:nth-child(2)",
	Name:               "div#gsc_prf_in",
	Histogram:          "div.gsc_md_hist_w > div.gsc_md_hist_b",
	HistogramYears:     "span.gsc_g_t",
	HistogramCitations: "a.gsc_g_a > span.gsc_g_al",
}

// Selectors 编译后的结构规则
type Selectors struct {
	SummaryTable       goquery.Matcher
	SummaryValues      goquery.Matcher
	Name               goquery.Matcher
	Histogram          goquery.Matcher
	HistogramYears     goquery.Matcher
	HistogramCitations goquery.Matcher
}

// DefaultSelectors 默认规则，包初始化时编译
var DefaultSelectors = MustCompileSelectors(DefaultSelectorRules)

// CompileSelectors 编译结构规则
func CompileSelectors(rules SelectorRules) (*Selectors, error) {
	var s Selectors
	targets := []struct {
		name string
		expr string
		dst  *goquery.Matcher
	}{
		{"summary_table", rules.SummaryTable, &s.SummaryTable},
		{"summary_values", rules.SummaryValues, &s.SummaryValues},
		{"name", rules.Name, &s.Name},
		{"histogram", rules.Histogram, &s.Histogram},
		{"histogram_years", rules.HistogramYears, &s.HistogramYears},
		{"histogram_citations", rules.HistogramCitations, &s.HistogramCitations},
	}

	for _, t := range targets {
		sel, err := cascadia.Compile(t.expr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s selector %q: %w", t.name, t.expr, err)
		}
		*t.dst = sel
	}

	return &s, nil
}

// MustCompileSelectors 编译失败直接panic（只用于固定规则）
func MustCompileSelectors(rules SelectorRules) *Selectors {
	s, err := CompileSelectors(rules)
	if err != nil {
		panic(err)
	}
	return s
}

// locateFirst 按文档顺序返回第一个匹配元素
func locateFirst(scope *goquery.Selection, m goquery.Matcher) (*goquery.Selection, bool) {
	found := scope.FindMatcher(m).First()
	return found, found.Length() > 0
}
