package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shouni/go-emoji-stripper/pkg/notifier"
	"github.com/shouni/go-emoji-stripper/pkg/stripper"
)

const (
	// 環境変数のキー
	envSlackWebhook = "SLACK_WEBHOOK_URL"

	defaultTimeoutSec = 30 // 秒
	slackUsername     = "emoji-stripper"
)

// options はコマンドラインフラグの値です。
type options struct {
	strategy     string
	excludeDirs  []string
	excludeExts  []string
	verbose      bool
	slackWebhook string
	timeoutSec   int
}

// newRootCmd はアプリケーションのベースとなるコマンドを作成します。
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "emoji-stripper [root]",
		Short: "ディレクトリ以下のテキストファイルから絵文字を除去します",
		Long: `指定したディレクトリ（省略時はカレントディレクトリ）以下を再帰的に走査し、
テキストファイルに含まれる絵文字・ピクトグラムを削除してファイルを上書きします。
.git や node_modules などのディレクトリ、画像やフォントなどの拡張子は対象外です。`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.strategy, "strategy", stripper.StrategyRanges,
		fmt.Sprintf("絵文字の判定方法 (%s: 固定のコードポイント範囲, %s: gomoji の絵文字データベース)", stripper.StrategyRanges, stripper.StrategyGomoji))
	flags.StringSliceVar(&opts.excludeDirs, "exclude-dir", nil, "追加で除外するディレクトリ名（複数指定可）")
	flags.StringSliceVar(&opts.excludeExts, "exclude-ext", nil, "追加で除外する拡張子（複数指定可、例: .lock）")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "スキップしたファイルなどの診断ログを標準エラーに出力します")
	flags.StringVar(&opts.slackWebhook, "slack-webhook", os.Getenv(envSlackWebhook), "結果を通知する Slack Incoming Webhook URL (ENV: SLACK_WEBHOOK_URL)")
	flags.IntVar(&opts.timeoutSec, "timeout", defaultTimeoutSec, "Slack への通知のタイムアウト時間（秒）")

	return cmd
}

// newLogger は診断ログ用のロガーを作成します。
func newLogger(cmd *cobra.Command, verbose bool) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "emoji-stripper",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// run はスキャンを実行し、結果を出力・通知します。
func run(cmd *cobra.Command, root string, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cmd, opts.verbose)

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("ディレクトリが存在しません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("指定されたパスはディレクトリではありません: %s", root)
	}

	filter, err := stripper.NewFilter(opts.strategy)
	if err != nil {
		return err
	}

	scanner := stripper.NewScanner(
		stripper.WithFilter(filter),
		stripper.WithExclusions(stripper.NewExclusions(opts.excludeDirs, opts.excludeExts)),
		stripper.WithLogger(logger),
		stripper.WithOutput(cmd.OutOrStdout()),
	)

	logger.Debug("スキャンを開始します", "root", root, "strategy", opts.strategy)
	res, err := scanner.Scan(ctx, root)
	if err != nil {
		return err
	}
	logger.Debug("スキャンが完了しました", "updated", res.Count(), "reported", res.Reported, "skipped", res.Skipped)

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal files updated: %d\n", res.Count())

	if opts.slackWebhook != "" {
		report := notifier.ScanReport{Root: root, Modified: res.Modified, Reported: res.Reported}
		slackNotifier := notifier.NewSlackNotifier(opts.slackWebhook, slackUsername, time.Duration(opts.timeoutSec)*time.Second)
		if err := notifier.Broadcast(ctx, report.Text(), slackNotifier); err != nil {
			// 通知の失敗は終了コードに影響させない
			logger.Warn("結果の通知に失敗しました", "err", err)
		}
	}

	return nil
}

// Execute は、ルートコマンドを実行するメイン関数です。
// main.go から呼び出されます。
func Execute(ctx context.Context) {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
