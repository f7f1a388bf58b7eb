package cmd

import (
	"fmt"
	"platform-cli/pkg/services/reporter"

	"github.com/spf13/cobra"
)

type configEditor interface {
	WriteConfigField(field, value string) error
	DeleteConfigField(field string) error
	ListConfigFields() ([]string, error)
}

type configCmd struct {
	app *app
	cmd *cobra.Command
}

func newConfigCmd(a *app) *configCmd {
	cc := &configCmd{app: a}
	cc.cmd = &cobra.Command{
		Use:   "config",
		Short: "Manually change the config values stored in the config file",
	}

	cc.cmd.AddCommand(
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Store a config value",
			Args:  cobra.ExactArgs(2),
			RunE:  cc.runSet,
		},
		&cobra.Command{
			Use:   "unset KEY",
			Short: "Remove a stored config value",
			Args:  cobra.ExactArgs(1),
			RunE:  cc.runUnset,
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show the stored config values",
			Args:  cobra.NoArgs,
			RunE:  cc.runList,
		},
	)
	return cc
}

func (c *configCmd) editor() configEditor {
	return c.app.profile(c.app.cfg.ConfigFile)
}

func (c *configCmd) runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := c.editor().WriteConfigField(args[0], args[1]); err != nil {
		return c.app.fail(ctx, err)
	}
	return c.app.report(ctx, reporter.Success("set %s", args[0]))
}

func (c *configCmd) runUnset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := c.editor().DeleteConfigField(args[0]); err != nil {
		return c.app.fail(ctx, err)
	}
	return c.app.report(ctx, reporter.Success("unset %s", args[0]))
}

func (c *configCmd) runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lines, err := c.editor().ListConfigFields()
	if err != nil {
		return c.app.fail(ctx, err)
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{line})
	}
	return c.app.report(ctx, reporter.Listing([]string{"setting"}, rows, fmt.Sprintf("No settings stored in %s.", c.app.cfg.ConfigFile)))
}
