package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/holiy930561/LenDon"
)

// MockProvider is a mock AI provider for testing and offline use.
type MockProvider struct {
	Results map[string]string // Map of trimmed source text to result

	mu          sync.Mutex
	callCount   int
	lastRequest *GenerationRequest
}

// NewMockProvider creates a new mock provider with default results.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Results: map[string]string{
			"苹果15手机壳 防摔 透明": "[Freeship] Ốp lưng iPhone 15 trong suốt chống sốc",
			"亲，这款有现货吗？":     "Dạ, sản phẩm bên em hiện vẫn còn hàng ạ. Anh/chị cần hỗ trợ thêm gì cứ nhắn shop nhé!",
			"全场五折 今晚截止":     "🔥 Sale sập sàn 50% - chỉ đến hết đêm nay!",
		},
	}
}

// Generate returns the mapped result or a bracketed echo of the source.
// Regenerations get a numbered suffix so each wording differs.
func (m *MockProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return GenerationResult{}, err
	}

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.lastRequest = &req
	m.mu.Unlock()

	source := strings.TrimSpace(req.SourceText)
	text, ok := m.Results[source]
	if !ok {
		text = fmt.Sprintf("[%s]", source)
	}
	if lendon.IsRegeneration(ctx) {
		text = fmt.Sprintf("%s (#%d)", text, n)
	}

	return GenerationResult{Text: text, Scenario: req.Scenario}, nil
}

// CallCount returns the number of Generate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the last request received.
func (m *MockProvider) LastRequest() *GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify MockProvider implements Generator
var _ Generator = (*MockProvider)(nil)
