package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hironow/msgtrans"
	"github.com/hironow/msgtrans/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if path := os.Getenv("MSGTRANS_LOG_FILE"); path != "" {
		if err := msgtrans.InitLogFile(path); err == nil {
			defer msgtrans.CloseLogFile()
		}
	}

	rootCmd := cmd.NewRootCommand()

	// `msgtrans [flags] [root]` is shorthand for `msgtrans generate`.
	args := os.Args[1:]
	if cmd.NeedsDefaultRun(rootCmd, args) {
		args = append([]string{cmd.DefaultCommand}, args...)
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
