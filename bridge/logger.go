package bridge

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns the console logger the demo binaries share. Test
// binaries get a no-op logger so package tests stay quiet.
func NewLogger() zerolog.Logger {
	if strings.HasSuffix(os.Args[0], ".test") {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(output).With().Timestamp().Logger()
}
