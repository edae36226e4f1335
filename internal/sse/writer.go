package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"scholar-metrics-go/internal/model"
)

// DefaultHeartbeatInterval 心跳间隔
const DefaultHeartbeatInterval = 15 * time.Second

// Writer SSE写入器
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     *model.AnalysisState
	stopHeart chan struct{}
	stopOnce  sync.Once
}

// NewWriter 创建SSE写入器并启动心跳
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	return NewWriterWithHeartbeat(w, DefaultHeartbeatInterval)
}

// NewWriterWithHeartbeat 使用指定心跳间隔创建SSE写入器
func NewWriterWithHeartbeat(w http.ResponseWriter, interval time.Duration) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writer := &Writer{
		w:         w,
		flusher:   flusher,
		state:     model.NewAnalysisState(),
		stopHeart: make(chan struct{}),
	}

	// 启动心跳
	go writer.heartbeat(interval)

	return writer, nil
}

// heartbeat 定期发送心跳保持连接
func (s *Writer) heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			select {
			case <-s.stopHeart:
				s.mu.Unlock()
				return
			default:
			}
			heartbeat := map[string]interface{}{
				"status":         model.StatusHeartbeat,
				"current_action": s.state.CurrentAction,
			}
			data, _ := json.Marshal(heartbeat)
			fmt.Fprintf(s.w, "data: %s\n\n", data)
			s.flusher.Flush()
			s.mu.Unlock()
		case <-s.stopHeart:
			return
		}
	}
}

// StopHeartbeat 停止心跳（可重复调用）
func (s *Writer) StopHeartbeat() {
	s.stopOnce.Do(func() {
		close(s.stopHeart)
	})
}

func (s *Writer) send() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.w, "data: %s\n\n", data)
	if err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SetQuery 设置查询
func (s *Writer) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
}

// SetAction 更新当前动作并发送
func (s *Writer) SetAction(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = model.StatusLoading
	s.state.CurrentAction = action
	return s.send()
}

// Done 发送最终结果并停止心跳
func (s *Writer) Done(result string) error {
	s.StopHeartbeat()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = model.StatusCompleted
	s.state.CurrentAction = "Analysis completed"
	s.state.Result = result
	return s.send()
}

// SendError 发送错误并停止心跳
func (s *Writer) SendError(kind, errMsg string) error {
	s.StopHeartbeat()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = model.StatusError
	s.state.CurrentAction = "Analysis failed"
	s.state.Error = errMsg
	s.state.ErrorKind = kind
	return s.send()
}
