package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port           string
	APIAccessKey   string
	SyncHourUTC    int
	AdapterTimeout int
	WebhookURL     string

	// Paid regulatory-intelligence providers
	LexisNexisAPIKey   string
	ComplianceAIAPIKey string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

// LexisNexisEnabled reports whether the LexisNexis adapter should run.
// Enablement is a pure function of credential presence, checked per run.
func (c *Cfg) LexisNexisEnabled() bool {
	return c.LexisNexisAPIKey != ""
}

// ComplianceAIEnabled reports whether the ComplianceAI adapter should run.
func (c *Cfg) ComplianceAIEnabled() bool {
	return c.ComplianceAIAPIKey != ""
}
