// Package stripper はディレクトリツリーを走査し、テキストファイルから絵文字を除去します。
package stripper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Result は1回のスキャン結果です。
type Result struct {
	// Modified は書き換えたファイルのパス（走査順）です。
	Modified []string
	// Reported は報告したうえでスキップしたファイル数です。
	Reported int
	// Skipped はデコード失敗・権限エラー・非通常ファイルとして黙ってスキップしたファイル数です。
	Skipped  int
}

// Count は書き換えたファイル数を返します。
func (r Result) Count() int {
	return len(r.Modified)
}

// Scanner は絵文字除去のためのツリー走査を行います。
type Scanner struct {
	filter     Filter
	exclusions Exclusions
	logger     *log.Logger
	out        io.Writer
}

// Option は Scanner の設定を変更します。
type Option func(*Scanner)

// WithFilter は除去戦略を指定します。
func WithFilter(f Filter) Option {
	return func(s *Scanner) {
		if f != nil {
			s.filter = f
		}
	}
}

// WithExclusions は除外設定を指定します。
func WithExclusions(e Exclusions) Option {
	return func(s *Scanner) {
		s.exclusions = e
	}
}

// WithLogger は診断ログの出力先ロガーを指定します。
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOutput はファイルごとの通知の出力先を指定します。
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) {
		if w != nil {
			s.out = w
		}
	}
}

// NewScanner は新しい Scanner を作成します。既定では標準の範囲と除外設定を使い、通知を標準出力に書きます。
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		filter:     defaultRangeFilter,
		exclusions: DefaultExclusions(),
		logger:     log.New(io.Discard),
		out:        os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan は root 以下を深さ優先で走査し、絵文字を含むテキストファイルを書き換えます。
//
// 読み込みエラーはファイル単位で処理され、走査は継続します。書き込みエラーと
// コンテキストのキャンセルは走査を中断し、それまでの結果とともに返されます。
func (s *Scanner) Scan(ctx context.Context, root string) (Result, error) {
	var res Result

	walkRoot := resolveRoot(root)
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// 読めないディレクトリやエントリは黙って飛ばす
			s.logger.Debug("走査できないパスをスキップします", "path", path, "err", err)
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != walkRoot && s.exclusions.SkipDir(d.Name()) {
				s.logger.Debug("除外ディレクトリをスキップします", "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		if s.exclusions.SkipFile(d.Name()) {
			return nil
		}

		if !s.isRegular(path, d) {
			res.Skipped++
			return nil
		}

		changed, err := s.process(path)
		switch {
		case err == nil:
		case errors.Is(err, errWrite):
			return err
		case isIgnorable(err):
			s.logger.Debug("テキストとして読めないファイルをスキップします", "path", path, "err", err)
			res.Skipped++
			return nil
		default:
			fmt.Fprintf(s.out, "Error processing %s: %v\n", path, err)
			s.logger.Warn("ファイルの処理に失敗しました", "path", path, "err", err)
			res.Reported++
			return nil
		}

		if changed {
			res.Modified = append(res.Modified, path)
			fmt.Fprintf(s.out, "Removed emojis from: %s\n", path)
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("スキャンを中断しました: %w", err)
	}

	return res, nil
}

// errWrite は書き換えに失敗したことを示します。
var errWrite = errors.New("ファイルの書き込みに失敗しました")

// resolveRoot は root がディレクトリへのシンボリックリンクの場合、リンク先を走査するよう
// 末尾に区切り文字を付けたパスを返します。出力されるパスはリンク名のままです。
func resolveRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	if st, err := os.Stat(root); err == nil && st.IsDir() {
		return root + string(filepath.Separator)
	}
	return root
}

// isRegular はエントリが処理対象の通常ファイルかどうかを判定します。
// シンボリックリンクは解決し、ディレクトリへのリンクは辿りません。
// 解決できないリンクは読み込みエラーとして報告させるため処理対象に含めます。
func (s *Scanner) isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		s.logger.Debug("通常ファイルではないためスキップします", "path", path)
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return info.Mode().IsRegular()
}

// process は1ファイルを読み込み、内容が変わる場合のみ書き換えます。
func (s *Scanner) process(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !utf8.Valid(content) {
		return false, ErrNotText
	}

	original := string(content)
	stripped := s.filter.Strip(original)
	if stripped == original {
		return false, nil
	}

	// 既存ファイルへの WriteFile はパーミッションを変更しない
	if err := os.WriteFile(path, []byte(stripped), 0o644); err != nil {
		return false, fmt.Errorf("%w: %s: %w", errWrite, path, err)
	}
	return true, nil
}
