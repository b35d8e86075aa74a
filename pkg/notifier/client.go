package notifier

import (
	"context"
	"fmt"
	"strings"
)

// MultiError は複数のエラーを保持するためのカスタムエラー型です。
type MultiError []error

func (m MultiError) Error() string {
	if len(m) == 0 {
		return "no errors"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(m)))
	for i, err := range m {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap は errors.Is / errors.As が個々のエラーを辿れるようにします。
func (m MultiError) Unwrap() []error {
	return m
}

// Notifier は、スキャン結果などのテキストを外部に通知するための共通インターフェースです。
type Notifier interface {
	// SendText は、プレーンなテキストメッセージを送信します。
	SendText(ctx context.Context, message string) error
}

// Broadcast は、すべての Notifier にメッセージを送信します。
// 一部の送信に失敗しても残りの Notifier への送信は継続し、失敗は MultiError にまとめて返します。
func Broadcast(ctx context.Context, message string, notifiers ...Notifier) error {
	var allErrors MultiError

	for _, n := range notifiers {
		if err := n.SendText(ctx, message); err != nil {
			allErrors = append(allErrors, fmt.Errorf("notifier %T failed: %w", n, err))
		}
	}

	if len(allErrors) > 0 {
		return allErrors
	}
	return nil
}

// ScanReport はスキャン結果の通知内容です。
type ScanReport struct {
	Root     string
	Modified []string
	Reported int
}

// maxListedFiles は通知本文に列挙するファイル数の上限です。
const maxListedFiles = 20

// Text は通知用のテキストを組み立てます。
func (r ScanReport) Text() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Emoji strip finished: %s\n", r.Root))
	sb.WriteString(fmt.Sprintf("Total files updated: %d\n", len(r.Modified)))
	if r.Reported > 0 {
		sb.WriteString(fmt.Sprintf("Files with errors: %d\n", r.Reported))
	}

	for i, path := range r.Modified {
		if i == maxListedFiles {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(r.Modified)-maxListedFiles))
			break
		}
		sb.WriteString("- " + path + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
