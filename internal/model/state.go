package model

// 分析状态
const (
	StatusLoading   = "loading"
	StatusCompleted = "completed"
	StatusError     = "error"
	StatusHeartbeat = "heartbeat"
)

// AnalysisState SSE推送给前端的状态
type AnalysisState struct {
	Query         string `json:"query"`
	Status        string `json:"status"`
	CurrentAction string `json:"current_action"`
	Result        string `json:"result,omitempty"`     // 序列化后的记录
	Error         string `json:"error,omitempty"`      // 错误描述
	ErrorKind     string `json:"error_kind,omitempty"` // 错误类型标签
}

// NewAnalysisState 创建初始状态
func NewAnalysisState() *AnalysisState {
	return &AnalysisState{
		Status: StatusLoading,
	}
}
