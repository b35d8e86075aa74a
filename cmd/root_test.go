package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute はルートコマンドを引数付きで実行し、標準出力と標準エラーの内容を返します。
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envSlackWebhook, "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_StripsAndReports(t *testing.T) {
	root := t.TempDir()
	hello := filepath.Join(root, "hello.txt")
	require.NoError(t, os.WriteFile(hello, []byte("Hello 🚀 World 😀!"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain.txt"), []byte("plain text"), 0o644))

	stdout, _, err := execute(t, root)
	require.NoError(t, err)

	assert.Equal(t, "Removed emojis from: "+hello+"\n\nTotal files updated: 1\n", stdout)

	b, err := os.ReadFile(hello)
	require.NoError(t, err)
	assert.Equal(t, "Hello  World !", string(b))
}

func TestRootCmd_SecondRunUpdatesNothing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("# 🎉 Release"), 0o644))

	_, _, err := execute(t, root)
	require.NoError(t, err)

	stdout, _, err := execute(t, root)
	require.NoError(t, err)
	assert.Equal(t, "\nTotal files updated: 0\n", stdout)
}

func TestRootCmd_DefaultsToWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a😀"), 0o644))
	t.Chdir(root)

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "Removed emojis from: a.txt\n\nTotal files updated: 1\n", stdout)
}

func TestRootCmd_ExcludeFlags(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "a.go"), []byte("// 🚀"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.lock"), []byte("🚀"), 0o644))

	stdout, _, err := execute(t, "--exclude-dir", "vendor", "--exclude-ext", ".lock", root)
	require.NoError(t, err)
	assert.Equal(t, "\nTotal files updated: 0\n", stdout)
}

func TestRootCmd_VerboseLogsSkippedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob"), []byte{0xff, 0xfe}, 0o644))

	stdout, stderr, err := execute(t, "-v", root)
	require.NoError(t, err)
	assert.Equal(t, "\nTotal files updated: 0\n", stdout)
	assert.Contains(t, stderr, "blob")

	_, stderr, err = execute(t, root)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRootCmd_InvalidArguments(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"存在しないディレクトリ", []string{filepath.Join(root, "missing")}},
		{"ファイルを指定", []string{file}},
		{"未知の戦略", []string{"--strategy", "regex", root}},
		{"引数が多すぎる", []string{root, root}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootCmd_SlackNotification(t *testing.T) {
	var got slack.WebhookMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a😀"), 0o644))

	_, _, err := execute(t, "--slack-webhook", srv.URL, root)
	require.NoError(t, err)

	assert.Equal(t, slackUsername, got.Username)
	assert.Contains(t, got.Text, "Total files updated: 1")
	assert.Contains(t, got.Text, filepath.Join(root, "a.txt"))
}

func TestRootCmd_SlackFailureDoesNotFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	root := t.TempDir()
	stdout, stderr, err := execute(t, "--slack-webhook", srv.URL, root)
	require.NoError(t, err)
	assert.Equal(t, "\nTotal files updated: 0\n", stdout)
	assert.NotEmpty(t, stderr)
}
