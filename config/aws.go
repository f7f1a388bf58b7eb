package config

const (
	DefaultProfile = "duvie-platform-cli"
	DefaultRegion  = "us-east-1"
)

// AWSConfig describes how to build the per-invocation AWS session.
type AWSConfig struct {
	CredentialPath []string
	ConfigPath     []string
	ProfileName    string
	Region         string
	// Endpoint overrides every service endpoint, e.g. a LocalStack URL. Static
	// test credentials are used when it is set.
	Endpoint string
}
