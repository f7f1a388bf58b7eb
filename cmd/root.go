package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"platform-cli/config"
	"platform-cli/pkg/services/prompt"
	"platform-cli/pkg/services/reporter"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Config config.Config

// app is the state shared by every command of one root command tree.
type app struct {
	cfg      *config.Config
	in       io.Reader
	out      io.Writer
	services serviceFactory
	// profile opens the config file edited by the config command.
	profile func(path string) configEditor

	keysToReBind []string
	term         *prompt.Terminal
}

var rootCmd = newRootCmd(&app{
	cfg:      &Config,
	in:       os.Stdin,
	out:      os.Stdout,
	services: awsServices,
	profile: func(path string) configEditor {
		return config.NewProfile(path)
	},
})

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "platform-cli",
		Short:         "Self-service management of the EC2, S3 and Route 53 resources this CLI creates",
		Long:          "Platform CLI creates AWS resources tagged as its own and only ever lists or changes resources carrying those tags.",
		Version:       "1.0",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg.Init()
			a.ReBindKeys(cmd.Root())
			// the level may have come from the environment or the config file
			a.cfg.SetupLogger()
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.LogLevel, "log-level", "info", "log level (debug, info, trace, warn, error)")
	flags.StringVar(&a.cfg.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/platform-cli/config.toml)")
	flags.StringVar(&a.cfg.Profile, "profile", config.DefaultProfile, "AWS profile to use")
	flags.StringVar(&a.cfg.Region, "region", config.DefaultRegion, "AWS region to use")
	flags.StringVar(&a.cfg.Endpoint, "endpoint", "", "override the AWS endpoint, e.g. a LocalStack URL")
	flags.StringVar(&a.cfg.PolicyFile, "policy-file", "", "HCL file overriding the built-in tag policy")
	flags.StringVarP(&a.cfg.Output, "output", "o", reporter.FormatText, fmt.Sprintf("output format %v", reporter.Formats))
	for _, key := range config.Keys {
		a.bindEnv(root, key)
	}

	root.AddCommand(newEC2Cmds(a)...)
	root.AddCommand(newS3Cmds(a)...)
	root.AddCommand(newRoute53Cmds(a)...)
	root.AddCommand(newConfigCmd(a).cmd)
	return root
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Failed to execute command", "error", err)
		os.Exit(1)
	}
}

// EnvKey returns the environment variable read for a config key.
func EnvKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(config.ToolName+"_"+key, "-", "_"))
}

// ReBindKeys applies the value found in viper config to the cobra flag when viper has a value (possibly from env)
func (a *app) ReBindKeys(root *cobra.Command) {
	for _, k := range a.keysToReBind {
		if viper.IsSet(k) {
			if err := root.PersistentFlags().Set(k, viper.GetString(k)); err != nil {
				slog.Warn("Ignoring invalid config value", "key", k, "error", err)
			}
		}
	}
}

// wraps viper's bindEnv and ensures we write values back to the Config
// value precedence is:
// 1. flag
// 2. env
// 3. config file
// 4. default
func (a *app) bindEnv(root *cobra.Command, key string) {
	viper.BindPFlag(key, root.PersistentFlags().Lookup(key))
	viper.BindEnv(key, EnvKey(key))
	a.keysToReBind = append(a.keysToReBind, key)
}

// terminal is created once so every question reads from the same buffer.
func (a *app) terminal() *prompt.Terminal {
	if a.term == nil {
		a.term = prompt.NewTerminal(a.in, a.out)
	}
	return a.term
}

// require asks for value when it was not given on the command line.
func (a *app) require(value *string, label string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	answer, err := a.terminal().Value(label)
	if err != nil {
		return err
	}
	*value = answer
	return nil
}

func (a *app) connect(ctx context.Context) (*services, error) {
	return a.services(ctx, a.cfg, a.terminal())
}

func (a *app) report(ctx context.Context, report *reporter.Report) error {
	writer, err := reporter.New(a.cfg.Output, a.out)
	if err != nil {
		return err
	}
	return writer.WriteReport(ctx, report)
}

// fail reports a handled failure. The command itself still succeeds.
func (a *app) fail(ctx context.Context, err error) error {
	slog.Debug("Operation failed", "error", err)
	return a.report(ctx, reporter.FromError(err))
}
