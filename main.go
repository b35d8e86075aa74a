package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/shouni/go-emoji-stripper/cmd"
)

func main() {
	// Ctrl+C ではファイルの途中ではなく、次のファイルに進む前に停止する
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Execute(ctx)
}
