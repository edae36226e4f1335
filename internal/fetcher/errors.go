package fetcher

import "fmt"

// ErrorKind 抓取错误类型
type ErrorKind int

const (
	KindInvalidIdentifier ErrorKind = iota + 1
	KindTableNotFound
	KindNameNotFound
	KindParse
	KindInsufficientData
	KindYearParse
	KindCitationParse
)

// String 返回错误类型标签（用于日志、指标和响应头）
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindTableNotFound:
		return "table_not_found"
	case KindNameNotFound:
		return "name_not_found"
	case KindParse:
		return "parse_error"
	case KindInsufficientData:
		return "insufficient_data"
	case KindYearParse:
		return "year_parse_error"
	case KindCitationParse:
		return "citation_parse_error"
	default:
		return "unknown"
	}
}

// ScrapeError 页面抓取/解析错误
// Text 为出错的原始文本，Count 为实际解析到的数量，只有对应类型会填充
type ScrapeError struct {
	Kind  ErrorKind
	Text  string
	Count int
}

func (e *ScrapeError) Error() string {
	switch e.Kind {
	case KindInvalidIdentifier:
		return "Website not found. Check the ID."
	case KindTableNotFound:
		return "Failed to find the citation table on the website"
	case KindNameNotFound:
		return "Failed to find the name on the website"
	case KindParse:
		return fmt.Sprintf("Failed to parse value: %s", e.Text)
	case KindInsufficientData:
		return fmt.Sprintf("Insufficient data: expected %d values, found %d", minSummaryValues, e.Count)
	case KindYearParse:
		return fmt.Sprintf("Failed to parse year: %s", e.Text)
	case KindCitationParse:
		return fmt.Sprintf("Failed to parse citation count: %s", e.Text)
	default:
		return "unknown scrape error"
	}
}

// Is 按类型匹配，errors.Is(err, ErrParse) 对任意文本的解析错误都成立
func (e *ScrapeError) Is(target error) bool {
	t, ok := target.(*ScrapeError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// 各类型的哨兵错误，用于 errors.Is
var (
	ErrInvalidIdentifier = &ScrapeError{Kind: KindInvalidIdentifier}
	ErrTableNotFound     = &ScrapeError{Kind: KindTableNotFound}
	ErrNameNotFound      = &ScrapeError{Kind: KindNameNotFound}
	ErrParse             = &ScrapeError{Kind: KindParse}
	ErrInsufficientData  = &ScrapeError{Kind: KindInsufficientData}
	ErrYearParse         = &ScrapeError{Kind: KindYearParse}
	ErrCitationParse     = &ScrapeError{Kind: KindCitationParse}
)

func newParseError(text string) error {
	return &ScrapeError{Kind: KindParse, Text: text}
}

func newInsufficientDataError(count int) error {
	return &ScrapeError{Kind: KindInsufficientData, Count: count}
}

func newYearParseError(text string) error {
	return &ScrapeError{Kind: KindYearParse, Text: text}
}

func newCitationParseError(text string) error {
	return &ScrapeError{Kind: KindCitationParse, Text: text}
}
