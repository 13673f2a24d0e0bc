package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON config files can use human-readable
// strings like "30s" or "5m" as well as plain nanosecond numbers.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for [Duration].
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// structuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations. It exists so the env-tagged struct stays free of
// JSON parsing concerns.
type structuredJSONConfig struct {
	Server struct {
		URL            string   `json:"url"`
		RequestTimeout Duration `json:"request_timeout"`
		CallbackPort   int      `json:"callback_port"`
		LoginTimeout   Duration `json:"login_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		Interval       Duration `json:"interval"`
		MaxAttempts    int      `json:"max_attempts"`
		BackoffBase    Duration `json:"backoff_base"`
		BackoffCap     Duration `json:"backoff_cap"`
		Concurrency    int      `json:"concurrency"`
		TombstoneGrace Duration `json:"tombstone_grace"`
		FetchLimit     int      `json:"fetch_limit"`
	} `json:"sync,omitempty"`

	Session struct {
		FilePath string `json:"file_path"`
	} `json:"session,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json config: %w", err)
	}

	return &StructuredConfig{
		Server: Server{
			URL:            jsonCfg.Server.URL,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CallbackPort:   jsonCfg.Server.CallbackPort,
			LoginTimeout:   time.Duration(jsonCfg.Server.LoginTimeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			Interval:       time.Duration(jsonCfg.Sync.Interval),
			MaxAttempts:    jsonCfg.Sync.MaxAttempts,
			BackoffBase:    time.Duration(jsonCfg.Sync.BackoffBase),
			BackoffCap:     time.Duration(jsonCfg.Sync.BackoffCap),
			Concurrency:    jsonCfg.Sync.Concurrency,
			TombstoneGrace: time.Duration(jsonCfg.Sync.TombstoneGrace),
			FetchLimit:     jsonCfg.Sync.FetchLimit,
		},
		Session: Session{
			FilePath: jsonCfg.Session.FilePath,
		},
	}, nil
}
