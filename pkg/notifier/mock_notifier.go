package notifier

import (
	"context"
	"sync"
)

// MockNotifier は Notifier インターフェースを実装し、実際のAPIコールを行わずメッセージを記録します。
type MockNotifier struct {
	Name string
	// Err が設定されている場合、SendText はそのエラーを返します。
	Err  error

	mu       sync.Mutex
	messages []string
}

// NewMockNotifier は MockNotifier のインスタンスを作成します。
func NewMockNotifier(name string) *MockNotifier {
	return &MockNotifier{Name: name}
}

// SendText は実際の投稿の代わりにメッセージを記録します。
func (m *MockNotifier) SendText(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return m.Err
}

// Messages は記録されたメッセージのコピーを返します。
func (m *MockNotifier) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}
