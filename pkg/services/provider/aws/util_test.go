package aws_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	awsProvider "platform-cli/pkg/services/provider/aws"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create dummy AWS config files
func createAwsConfigFiles(t *testing.T, dir string, credsContent, configContent string) (string, string) {
	require.NoError(t, os.MkdirAll(dir, 0755))
	credsPath := filepath.Join(dir, "credentials")
	configPath := filepath.Join(dir, "config")

	if credsContent != "" {
		require.NoError(t, os.WriteFile(credsPath, []byte(credsContent), 0644))
	}
	if configContent != "" {
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	}
	return credsPath, configPath
}

// Helper to capture slog output
func captureSlogOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

// clearAWSEnv isolates a test from the credentials of whoever runs it.
func clearAWSEnv(t *testing.T) {
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "")
	t.Setenv("AWS_CONFIG_FILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
}

func TestCheckAWSConfig_DefaultPathsFound(t *testing.T) {
	clearAWSEnv(t)
	homeDir := t.TempDir()
	credsPath, configPath := createAwsConfigFiles(t, filepath.Join(homeDir, ".aws"),
		"[duvie-platform-cli]\naws_access_key_id = test", "[profile duvie-platform-cli]\nregion = us-east-1")

	cfg, err := awsProvider.CheckAWSConfig(homeDir, "")
	require.NoError(t, err)

	assert.Equal(t, []string{credsPath}, cfg.CredentialPath)
	assert.Equal(t, []string{configPath}, cfg.ConfigPath)
	assert.Equal(t, "duvie-platform-cli", cfg.ProfileName)
}

func TestCheckAWSConfig_EnvFilesAppended(t *testing.T) {
	clearAWSEnv(t)
	tmpDir := t.TempDir()
	credsPath, configPath := createAwsConfigFiles(t, filepath.Join(tmpDir, "custom"),
		"[default]\naws_access_key_id = env_test", "[profile default]\nregion = eu-west-1")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credsPath)
	t.Setenv("AWS_CONFIG_FILE", configPath)

	buf := captureSlogOutput(t)
	cfg, err := awsProvider.CheckAWSConfig(filepath.Join(tmpDir, "home"), "my-profile")
	require.NoError(t, err)

	assert.Equal(t, []string{credsPath}, cfg.CredentialPath)
	assert.Equal(t, []string{configPath}, cfg.ConfigPath)
	assert.Equal(t, "my-profile", cfg.ProfileName)
	assert.Contains(t, buf.String(), "AWS credentials file found via AWS_SHARED_CREDENTIALS_FILE")
	assert.Contains(t, buf.String(), "AWS config file found via AWS_CONFIG_FILE")
}

func TestCheckAWSConfig_MissingEnvFileIgnored(t *testing.T) {
	clearAWSEnv(t)
	homeDir := t.TempDir()
	createAwsConfigFiles(t, filepath.Join(homeDir, ".aws"), "[default]\naws_access_key_id = test", "")
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent/env/config")

	buf := captureSlogOutput(t)
	cfg, err := awsProvider.CheckAWSConfig(homeDir, "")
	require.NoError(t, err)
	assert.Len(t, cfg.CredentialPath, 1)
	assert.Empty(t, cfg.ConfigPath)
	assert.Contains(t, buf.String(), "AWS_CONFIG_FILE points to a missing or unreadable file")
	assert.Contains(t, buf.String(), "Default AWS config file not found")
}

func TestCheckAWSConfig_NoCredentials(t *testing.T) {
	clearAWSEnv(t)
	homeDir := t.TempDir()

	buf := captureSlogOutput(t)
	cfg, err := awsProvider.CheckAWSConfig(homeDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aws configure --profile duvie-platform-cli")
	assert.Contains(t, buf.String(), "Default AWS credentials file not found")
	assert.Empty(t, cfg.CredentialPath)
}

func TestCheckAWSConfig_EnvironmentCredentials(t *testing.T) {
	clearAWSEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")

	cfg, err := awsProvider.CheckAWSConfig(t.TempDir(), "ci")
	require.NoError(t, err)
	assert.Empty(t, cfg.CredentialPath)
	assert.Equal(t, "ci", cfg.ProfileName)
}
