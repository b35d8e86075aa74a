package stripper

import (
	"errors"
	"io/fs"
)

// ErrNotText は内容が UTF-8 として解釈できないファイルを表します。
var ErrNotText = errors.New("UTF-8 テキストではありません")

// isIgnorable は黙ってスキップしてよい読み込みエラーかどうかを判定します。
// デコード失敗と権限エラーのみが該当し、それ以外は報告対象です。
func isIgnorable(err error) bool {
	return errors.Is(err, ErrNotText) || errors.Is(err, fs.ErrPermission)
}
