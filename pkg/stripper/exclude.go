package stripper

import "strings"

// defaultExcludedDirs は走査しないディレクトリ名です。
// VCS メタデータ、依存パッケージ、ビルド出力、ツール固有のキャッシュ。
var defaultExcludedDirs = []string{
	".git",
	"node_modules",
	"dist",
	".wrangler",
	".gemini",
}

// defaultExcludedExtensions は開かないファイルの拡張子です（大文字小文字を区別する後方一致）。
var defaultExcludedExtensions = []string{
	// 画像
	".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg",
	// ドキュメント
	".pdf",
	// Web フォント
	".woff", ".woff2", ".ttf", ".eot",
}

// Exclusions は除外ディレクトリ名と除外拡張子の組です。生成後は変更されません。
type Exclusions struct {
	dirs       map[string]bool
	extensions []string
}

// DefaultExclusions は標準の除外設定を返します。
func DefaultExclusions() Exclusions {
	return NewExclusions(nil, nil)
}

// NewExclusions は標準の除外設定に extraDirs と extraExts を加えたものを返します。
// 標準のリスト自体は変更しません。
func NewExclusions(extraDirs, extraExts []string) Exclusions {
	dirs := make(map[string]bool, len(defaultExcludedDirs)+len(extraDirs))
	for _, d := range defaultExcludedDirs {
		dirs[d] = true
	}
	for _, d := range extraDirs {
		if d != "" {
			dirs[d] = true
		}
	}

	exts := append([]string(nil), defaultExcludedExtensions...)
	for _, e := range extraExts {
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}

	return Exclusions{dirs: dirs, extensions: exts}
}

// SkipDir はディレクトリ名が除外対象かどうかを返します。
func (e Exclusions) SkipDir(name string) bool {
	return e.dirs[name]
}

// SkipFile はファイル名が除外拡張子で終わるかどうかを返します。
func (e Exclusions) SkipFile(name string) bool {
	for _, ext := range e.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
