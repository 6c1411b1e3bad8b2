package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/fluxpad/fluxpad/internal/flagx"
	"github.com/fluxpad/fluxpad/internal/timex"
)

// JsonConfig is the JSON-file counterpart of Config, using timex.Duration
// so that intervals parse from both "10s" strings and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	SessionDBPath     string         `json:"session_db_path"`
}

func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerEndpointURL = c.ServerEndpointURL
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	config.SessionDBPath = c.SessionDBPath
}
