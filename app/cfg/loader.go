package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"compliance_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"compliance_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"compliance_monitor" description:"Database name"`

	// Application configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"Admin API access key (admin endpoints disabled when empty)"`
	SyncHourUTC    int    `long:"sync-hour" env:"SYNC_HOUR_UTC" default:"6" description:"UTC hour of the daily compliance sync (0-23)"`
	AdapterTimeout int    `long:"adapter-timeout" env:"ADAPTER_TIMEOUT" default:"120" description:"Per-adapter timeout in seconds"`
	WebhookURL     string `long:"webhook-url" env:"NOTIFY_WEBHOOK_URL" description:"Webhook URL for paging non-informational alerts (optional)"`

	// Paid regulatory-intelligence providers (adapter enabled iff key set)
	LexisNexisAPIKey   string `long:"lexisnexis-api-key" env:"LEXISNEXIS_API_KEY" description:"LexisNexis regulatory API key (optional)"`
	ComplianceAIAPIKey string `long:"complianceai-api-key" env:"COMPLIANCE_AI_API_KEY" description:"ComplianceAI API key (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TherapyCareNow Compliance Monitor/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.SyncHourUTC < 0 || raw.SyncHourUTC > 23 {
		return nil, fmt.Errorf("invalid sync hour %d: must be 0-23", raw.SyncHourUTC)
	}

	cfg := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		SyncHourUTC:        raw.SyncHourUTC,
		AdapterTimeout:     raw.AdapterTimeout,
		WebhookURL:         raw.WebhookURL,
		LexisNexisAPIKey:   raw.LexisNexisAPIKey,
		ComplianceAIAPIKey: raw.ComplianceAIAPIKey,
		UserAgent:          raw.UserAgent,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}
