package config

import (
	"flag"
	"os"
	"time"

	"github.com/fluxpad/fluxpad/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   API base URL (e.g., "http://localhost:8000")
//	-w int      request timeout, seconds
//	-b string   path of the local session database
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-w", "-b"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointURL, "e", config.ServerEndpointURL, "API base URL")
	requestTimeout := fs.Int("w", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&config.SessionDBPath, "b", config.SessionDBPath, "session database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
