package cmd

import (
	"fmt"
	"platform-cli/pkg/services/manager"
	"platform-cli/pkg/services/provider"
	"platform-cli/pkg/services/reporter"
	"strings"

	"github.com/spf13/cobra"
)

type route53Cmd struct {
	app      *app
	zoneName string
	zoneID   string
	record   provider.Record
}

func newRoute53Cmds(a *app) []*cobra.Command {
	rc := &route53Cmd{app: a}

	createZone := &cobra.Command{
		Use:   "create-zone",
		Short: "Create a public Route 53 hosted zone",
		Args:  cobra.NoArgs,
		RunE:  rc.runCreateZone,
	}
	createZone.Flags().StringVar(&rc.zoneName, "zone_name", "", "Domain name of the zone")

	listZones := &cobra.Command{
		Use:   "list-zones",
		Short: "List CLI-created hosted zones",
		Args:  cobra.NoArgs,
		RunE:  rc.runListZones,
	}

	listRecords := &cobra.Command{
		Use:   "list-records",
		Short: "List the records of a CLI-created hosted zone",
		Args:  cobra.NoArgs,
		RunE:  rc.runListRecords,
	}
	listRecords.Flags().StringVar(&rc.zoneID, "zone_id", "", "ID of the hosted zone")

	createRecord := &cobra.Command{
		Use:   "create-record",
		Short: "Create a record in a CLI-created hosted zone",
		Args:  cobra.NoArgs,
		RunE:  rc.runChange(provider.ChangeCreate),
	}
	updateRecord := &cobra.Command{
		Use:   "update-record",
		Short: "Create or replace a record in a CLI-created hosted zone",
		Args:  cobra.NoArgs,
		RunE:  rc.runChange(provider.ChangeUpsert),
	}
	deleteRecord := &cobra.Command{
		Use:   "delete-record",
		Short: "Delete a record from a CLI-created hosted zone",
		Args:  cobra.NoArgs,
		RunE:  rc.runChange(provider.ChangeDelete),
	}
	for _, c := range []*cobra.Command{createRecord, updateRecord, deleteRecord} {
		c.Flags().StringVar(&rc.zoneID, "zone_id", "", "ID of the hosted zone")
		c.Flags().StringVar(&rc.record.Name, "name", "", "Record name, e.g. www.example.com")
		c.Flags().StringVar(&rc.record.Type, "type", "", "Record type, e.g. A or CNAME")
		c.Flags().StringVar(&rc.record.Value, "value", "", "Record value")
	}
	createRecord.Flags().Int64Var(&rc.record.TTL, "ttl", manager.DefaultRecordTTL, "Time to live in seconds")
	updateRecord.Flags().Int64Var(&rc.record.TTL, "ttl", manager.DefaultRecordTTL, "Time to live in seconds")

	return []*cobra.Command{createZone, listZones, listRecords, createRecord, updateRecord, deleteRecord}
}

func (r *route53Cmd) runCreateZone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := r.app.require(&r.zoneName, "Zone name"); err != nil {
		return r.app.fail(ctx, err)
	}
	svc, err := r.app.connect(ctx)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	zone, err := svc.dns.CreateZone(ctx, r.zoneName)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	return r.app.report(ctx, reporter.Success("created zone %s (%s)", r.zoneName, zone.ID))
}

func (r *route53Cmd) runListZones(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := r.app.connect(ctx)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	zones, err := svc.dns.ListZones(ctx)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	rows := make([][]string, 0, len(zones))
	for _, zone := range zones {
		rows = append(rows, []string{zone.Name, zone.ID})
	}
	return r.app.report(ctx, reporter.Listing([]string{"name", "zone_id"}, rows, "No hosted zones created by this CLI."))
}

func (r *route53Cmd) runListRecords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := r.app.require(&r.zoneID, "Zone id"); err != nil {
		return r.app.fail(ctx, err)
	}
	svc, err := r.app.connect(ctx)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	records, err := svc.dns.ListRecords(ctx, r.zoneID)
	if err != nil {
		return r.app.fail(ctx, err)
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		ttl := ""
		if record.TTL > 0 {
			ttl = fmt.Sprint(record.TTL)
		}
		rows = append(rows, []string{record.Name, record.Type, ttl, strings.Join(record.Values, ",")})
	}
	return r.app.report(ctx, reporter.Listing([]string{"name", "type", "ttl", "values"}, rows, fmt.Sprintf("Zone %s has no records.", r.zoneID)))
}

var changeVerbs = map[provider.ChangeAction]string{
	provider.ChangeCreate: "created",
	provider.ChangeUpsert: "updated",
	provider.ChangeDelete: "deleted",
}

func (r *route53Cmd) runChange(action provider.ChangeAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := r.app.require(&r.zoneID, "Zone id"); err != nil {
			return r.app.fail(ctx, err)
		}
		svc, err := r.app.connect(ctx)
		if err != nil {
			return r.app.fail(ctx, err)
		}

		switch action {
		case provider.ChangeCreate:
			err = svc.dns.CreateRecord(ctx, r.zoneID, r.record)
		case provider.ChangeUpsert:
			err = svc.dns.UpdateRecord(ctx, r.zoneID, r.record)
		case provider.ChangeDelete:
			err = svc.dns.DeleteRecord(ctx, r.zoneID, r.record.Name, r.record.Type, r.record.Value)
		}
		if err != nil {
			return r.app.fail(ctx, err)
		}
		return r.app.report(ctx, reporter.Success("%s record %s (%s) in %s", changeVerbs[action], r.record.Name, r.record.Type, r.zoneID))
	}
}
