package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-r resources directory holding vault and account files
//	-c/-config json file path with configs
//	-breach-url breach range endpoint base URL
//	-breach-timeout breach lookup timeout (e.g., "3s")
//	-password-hash-key master password hash key
//	-totp-issuer issuer label for second-factor enrollment
//	-max-attempts failed attempts before lockout
//	-lockout-window lockout duration (e.g., "60s")
//	-log log file path (empty = stdout)
func ParseFlags() *StructuredConfig {
	var resourcesDir string
	var jsonConfigPath string
	var breachURL string
	var breachTimeout time.Duration
	var passwordHashKey string
	var totpIssuer string
	var maxAttempts int
	var lockoutWindow time.Duration
	var logPath string

	flag.StringVar(&resourcesDir, "r", "", "Resources directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&breachURL, "breach-url", "", "Breach range endpoint base URL")
	flag.DurationVar(&breachTimeout, "breach-timeout", 0, "Breach lookup timeout (e.g., 3s)")
	flag.StringVar(&passwordHashKey, "password-hash-key", "", "Master password hash key")
	flag.StringVar(&totpIssuer, "totp-issuer", "", "Second-factor issuer label")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Failed attempts before lockout")
	flag.DurationVar(&lockoutWindow, "lockout-window", 0, "Lockout duration (e.g., 60s)")
	flag.StringVar(&logPath, "log", "", "Log file path")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			PasswordHashKey:  passwordHashKey,
			TOTPIssuer:       totpIssuer,
			MaxLoginAttempts: maxAttempts,
			LockoutWindow:    lockoutWindow,
			LogPath:          logPath,
		},
		Storage: Storage{
			ResourcesDir: resourcesDir,
		},
		Breach: Breach{
			BaseURL: breachURL,
			Timeout: breachTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
