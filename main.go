package main

import (
	"os"

	"github.com/example/wordsrs/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		format, _ := cmd.PersistentFlags().GetString("format")
		out := &cli.OutputFormatter{Format: format, Writer: cmd.ErrOrStderr()}
		out.Error(err)
		os.Exit(cli.GetExitCode(err))
	}
}
