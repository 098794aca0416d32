package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type structuredJSONConfig struct {
	App struct {
		PasswordHashKey  string   `json:"password_hash_key"`
		TOTPIssuer       string   `json:"totp_issuer"`
		MaxLoginAttempts int      `json:"max_login_attempts"`
		LockoutWindow    Duration `json:"lockout_window"`
		LogPath          string   `json:"log_path"`
	} `json:"app,omitempty"`

	Storage struct {
		ResourcesDir string `json:"resources_dir"`
	} `json:"storage,omitempty"`

	Breach struct {
		BaseURL string   `json:"base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"breach,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey:  jsonCfg.App.PasswordHashKey,
			TOTPIssuer:       jsonCfg.App.TOTPIssuer,
			MaxLoginAttempts: jsonCfg.App.MaxLoginAttempts,
			LockoutWindow:    time.Duration(jsonCfg.App.LockoutWindow),
			LogPath:          jsonCfg.App.LogPath,
		},
		Storage: Storage{
			ResourcesDir: jsonCfg.Storage.ResourcesDir,
		},
		Breach: Breach{
			BaseURL: jsonCfg.Breach.BaseURL,
			Timeout: time.Duration(jsonCfg.Breach.Timeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
