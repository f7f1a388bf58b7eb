package cmd

import (
	"platform-cli/pkg/services/reporter"

	"github.com/spf13/cobra"
)

type ec2Cmd struct {
	app          *app
	instanceType string
	osName       string
	instanceID   string
}

func newEC2Cmds(a *app) []*cobra.Command {
	ec := &ec2Cmd{app: a}

	create := &cobra.Command{
		Use:   "create-ec2",
		Short: "Create an EC2 instance",
		Args:  cobra.NoArgs,
		RunE:  ec.runCreate,
	}
	create.Flags().StringVar(&ec.instanceType, "instance_type", "t3.micro", "EC2 instance type")
	create.Flags().StringVar(&ec.osName, "os_name", "ubuntu", "OS: ubuntu or amazon-linux")

	start := &cobra.Command{
		Use:   "start-ec2",
		Short: "Start a CLI-created EC2 instance",
		Args:  cobra.NoArgs,
		RunE:  ec.runStart,
	}
	start.Flags().StringVar(&ec.instanceID, "instance_id", "", "ID of the instance to start")

	stop := &cobra.Command{
		Use:   "stop-ec2",
		Short: "Stop a CLI-created EC2 instance",
		Args:  cobra.NoArgs,
		RunE:  ec.runStop,
	}
	stop.Flags().StringVar(&ec.instanceID, "instance_id", "", "ID of the instance to stop")

	list := &cobra.Command{
		Use:   "list-ec2",
		Short: "List CLI-created EC2 instances",
		Args:  cobra.NoArgs,
		RunE:  ec.runList,
	}

	return []*cobra.Command{create, start, stop, list}
}

func (e *ec2Cmd) runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := e.app.connect(ctx)
	if err != nil {
		return e.app.fail(ctx, err)
	}
	instance, err := svc.compute.Create(ctx, e.instanceType, e.osName)
	if err != nil {
		return e.app.fail(ctx, err)
	}
	return e.app.report(ctx, reporter.Success("created instance %s (state: %s)", instance.ID, instance.State))
}

func (e *ec2Cmd) runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := e.app.require(&e.instanceID, "Instance id"); err != nil {
		return e.app.fail(ctx, err)
	}
	svc, err := e.app.connect(ctx)
	if err != nil {
		return e.app.fail(ctx, err)
	}
	if err := svc.compute.Start(ctx, e.instanceID); err != nil {
		return e.app.fail(ctx, err)
	}
	return e.app.report(ctx, reporter.Success("starting instance %s", e.instanceID))
}

func (e *ec2Cmd) runStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := e.app.require(&e.instanceID, "Instance id"); err != nil {
		return e.app.fail(ctx, err)
	}
	svc, err := e.app.connect(ctx)
	if err != nil {
		return e.app.fail(ctx, err)
	}
	if err := svc.compute.Stop(ctx, e.instanceID); err != nil {
		return e.app.fail(ctx, err)
	}
	return e.app.report(ctx, reporter.Success("stopping instance %s", e.instanceID))
}

func (e *ec2Cmd) runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := e.app.connect(ctx)
	if err != nil {
		return e.app.fail(ctx, err)
	}

	var rows [][]string
	for instance, err := range svc.compute.List(ctx) {
		if err != nil {
			return e.app.fail(ctx, err)
		}
		rows = append(rows, []string{instance.ID, instance.State})
	}
	return e.app.report(ctx, reporter.Listing([]string{"instance_id", "state"}, rows, "No instances created by this CLI."))
}
