package handler

// AnalyzeRequest 统一的分析请求参数
type AnalyzeRequest struct {
	Query string `json:"query"` // Google Scholar 学者ID
}
