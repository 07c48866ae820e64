package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/dbview/cmd"
	"github.com/oakwood-commons/dbview/pkg/logger"
	"github.com/oakwood-commons/dbview/pkg/settings"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", settings.CliBinaryName, err)
		exitCode = cmd.ExitCode(err)
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
