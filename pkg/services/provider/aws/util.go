package aws

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"platform-cli/config"
)

// CheckAWSConfig collects the shared credential and config files the SDK
// should read: the defaults under ~/.aws, followed by any file named by
// AWS_SHARED_CREDENTIALS_FILE or AWS_CONFIG_FILE. Credentials exported in the
// environment are accepted in place of a credentials file.
func CheckAWSConfig(homeDir string, profile string) (config.AWSConfig, error) {
	out := config.AWSConfig{
		CredentialPath: []string{},
		ConfigPath:     []string{},
		ProfileName:    profile,
	}
	if out.ProfileName == "" {
		out.ProfileName = config.DefaultProfile
	}

	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			slog.Error("Failed to get user home directory", "error", err)
			return out, err
		}
	}
	awsDir := filepath.Join(homeDir, ".aws")
	slog.Debug("Checking default AWS configuration directory", "path", awsDir)

	found, err := defaultFile(filepath.Join(awsDir, "credentials"), "credentials")
	if err != nil {
		return out, err
	}
	out.CredentialPath = append(out.CredentialPath, found...)

	found, err = defaultFile(filepath.Join(awsDir, "config"), "config")
	if err != nil {
		return out, err
	}
	out.ConfigPath = append(out.ConfigPath, found...)

	out.CredentialPath = append(out.CredentialPath, envFile("AWS_SHARED_CREDENTIALS_FILE", "credentials")...)
	out.ConfigPath = append(out.ConfigPath, envFile("AWS_CONFIG_FILE", "config")...)

	if len(out.CredentialPath) == 0 && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		return out, fmt.Errorf("no AWS credentials found, configure a profile with `aws configure --profile %s`", out.ProfileName)
	}
	return out, nil
}

func defaultFile(path, kind string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			slog.Debug(fmt.Sprintf("Default AWS %s file not found", kind), "path", path)
			return nil, nil
		}
		slog.Error(fmt.Sprintf("Error checking default AWS %s file", kind), "path", path, "error", err)
		return nil, err
	}
	return []string{path}, nil
}

func envFile(envVar, kind string) []string {
	path := os.Getenv(envVar)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		slog.Warn(fmt.Sprintf("%s points to a missing or unreadable file", envVar), "path", path, "error", err)
		return nil
	}
	slog.Info(fmt.Sprintf("AWS %s file found via %s", kind, envVar), "path", path)
	return []string{path}
}
