package config

import (
	"fmt"
	"io"
	"os"
)

// Exit codes used by kickback binaries.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	exitOutput io.Writer = os.Stderr
	exit                 = os.Exit
)

// Exitf writes a formatted message to stderr and exits with code.
func Exitf(code int, format string, args ...any) {
	fmt.Fprintf(exitOutput, format+"\n", args...)
	exit(code)
}
