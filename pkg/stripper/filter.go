package stripper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

// CodePointRange は絵文字とみなす Unicode スカラー値の閉区間です。
type CodePointRange struct {
	Lo   rune
	Hi   rune
	Name string
}

// Contains は r が区間内にあるかどうかを返します。
func (c CodePointRange) Contains(r rune) bool {
	return c.Lo <= r && r <= c.Hi
}

// DefaultRanges は標準の絵文字コードポイント範囲です。順序は正規表現の文字クラスにそのまま反映されます。
var DefaultRanges = []CodePointRange{
	{0x1F600, 0x1F64F, "emoticons"},
	{0x1F300, 0x1F5FF, "symbols & pictographs"},
	{0x1F680, 0x1F6FF, "transport & map symbols"},
	{0x1F1E0, 0x1F1FF, "flags"},
	{0x2600, 0x26FF, "misc symbols"},
	{0x2700, 0x27BF, "dingbats"},
	{0xFE00, 0xFE0F, "variation selectors"},
	{0x1F900, 0x1F9FF, "supplemental symbols and pictographs"},
	{0x1FA70, 0x1FAFF, "symbols and pictographs extended-a"},
}

// Filter はテキストから絵文字を取り除く戦略です。
type Filter interface {
	// Strip は絵文字を除去したテキストを返します。
	Strip(text string) string
	// Contains はテキストに除去対象の文字が含まれるかどうかを返します。
	Contains(text string) bool
}

// 戦略名 (--strategy フラグの値)
const (
	StrategyRanges = "ranges"
	StrategyGomoji = "gomoji"
)

// NewFilter は戦略名から Filter を生成します。
func NewFilter(strategy string) (Filter, error) {
	switch strategy {
	case "", StrategyRanges:
		return defaultRangeFilter, nil
	case StrategyGomoji:
		return GomojiFilter{}, nil
	default:
		return nil, fmt.Errorf("未知の除去戦略です: %q (%s または %s を指定してください)", strategy, StrategyRanges, StrategyGomoji)
	}
}

// RangeFilter はコードポイント範囲の和集合にマッチする連続した文字列を削除します。
type RangeFilter struct {
	ranges  []CodePointRange
	pattern *regexp.Regexp
}

var defaultRangeFilter = NewRangeFilter(DefaultRanges)

// NewRangeFilter は与えられた範囲から RangeFilter を構築します。
func NewRangeFilter(ranges []CodePointRange) *RangeFilter {
	return &RangeFilter{
		ranges:  append([]CodePointRange(nil), ranges...),
		pattern: regexp.MustCompile(buildPattern(ranges)),
	}
}

// buildPattern は `[\x{1F600}-\x{1F64F}...]+` 形式の正規表現を組み立てます。
func buildPattern(ranges []CodePointRange) string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, r := range ranges {
		sb.WriteString(fmt.Sprintf(`\x{%X}-\x{%X}`, r.Lo, r.Hi))
	}
	sb.WriteString("]+")
	return sb.String()
}

// Strip はマッチした最大連続部分をすべて空文字に置き換えます。
func (f *RangeFilter) Strip(text string) string {
	return f.pattern.ReplaceAllLiteralString(text, "")
}

func (f *RangeFilter) Contains(text string) bool {
	return f.pattern.MatchString(text)
}

// Ranges は範囲のコピーを返します。
func (f *RangeFilter) Ranges() []CodePointRange {
	return append([]CodePointRange(nil), f.ranges...)
}

// GomojiFilter は gomoji の絵文字データベースに基づいて除去します。
// ZWJ シーケンスやキーキャップなど、固定範囲の外にある絵文字も対象になります。
type GomojiFilter struct{}

func (GomojiFilter) Strip(text string) string {
	return gomoji.RemoveEmojis(text)
}

func (GomojiFilter) Contains(text string) bool {
	return gomoji.ContainsEmoji(text)
}

// Strip は標準の範囲で絵文字を除去します。
func Strip(text string) string {
	return defaultRangeFilter.Strip(text)
}

// Contains は標準の範囲の文字が含まれるかどうかを返します。
func Contains(text string) bool {
	return defaultRangeFilter.Contains(text)
}
