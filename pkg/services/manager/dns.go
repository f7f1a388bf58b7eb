package manager

import (
	"context"
	"log/slog"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/guard"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"
	"strings"
)

const (
	DefaultRecordTTL int64 = 300
	// deleteRecordTTL is sent on every delete regardless of the record's real
	// TTL. Route 53 rejects a delete whose TTL does not match the existing set.
	// TODO: read the set's TTL from ListRecords before deleting.
	deleteRecordTTL int64 = 300
)

type DNSManager struct {
	gateway   provider.DNSGateway
	ownership *guard.OwnershipGuard
	policy    policy.Policy
}

func NewDNSManager(gateway provider.DNSGateway, p policy.Policy) *DNSManager {
	return &DNSManager{
		gateway:   gateway,
		ownership: guard.NewOwnershipGuard(p),
		policy:    p,
	}
}

// CreateZone creates a public hosted zone and tags it. The zone name doubles
// as the caller reference, so repeating a name is handled however Route 53
// decides to handle a reused reference.
func (d *DNSManager) CreateZone(ctx context.Context, name string) (provider.Zone, error) {
	if strings.TrimSpace(name) == "" {
		return provider.Zone{}, clierr.InvalidArgument("zone name is required")
	}
	zone, err := d.gateway.CreateZone(ctx, name, name)
	if err != nil {
		return provider.Zone{}, clierr.Remote(err, "failed to create zone %s", name)
	}
	if err := d.gateway.TagZone(ctx, provider.StripZoneID(zone.ID), d.policy.OwnershipTags()); err != nil {
		slog.Warn("Zone created but not tagged, it is not manageable by this CLI", "prefix", "manager.DNSManager.CreateZone", "zone", zone.ID, "error", err)
		return zone, clierr.Remote(err, "zone %s (%s) was created but tagging failed", name, zone.ID)
	}
	return zone, nil
}

// ListZones returns the CLI-owned zones. Zones whose tags cannot be read for
// lack of permission are skipped; other failures abort the listing.
func (d *DNSManager) ListZones(ctx context.Context) ([]provider.Zone, error) {
	zones, err := d.gateway.ListZones(ctx)
	if err != nil {
		return nil, clierr.Remote(err, "could not list zones")
	}

	var owned []provider.Zone
	for _, zone := range zones {
		outcome, err := d.gateway.ZoneTags(ctx, provider.StripZoneID(zone.ID))
		if err != nil {
			return nil, clierr.Remote(err, "could not list zones")
		}
		if !d.ownership.Owns(outcome) {
			slog.Debug("Skipping zone", "prefix", "manager.DNSManager.ListZones", "zone", zone.ID, "status", outcome.Status)
			continue
		}
		owned = append(owned, zone)
	}
	return owned, nil
}

// IsOwnedZone accepts either a bare or a "/hostedzone/" prefixed id. Any
// lookup failure counts as not owned.
func (d *DNSManager) IsOwnedZone(ctx context.Context, zoneID string) bool {
	id := provider.StripZoneID(zoneID)
	if id == "" {
		return false
	}
	return d.ownership.IsOwned(ctx, func(ctx context.Context) (provider.FetchOutcome, error) {
		return d.gateway.ZoneTags(ctx, id)
	})
}

func (d *DNSManager) ListRecords(ctx context.Context, zoneID string) ([]provider.RecordSummary, error) {
	if !d.IsOwnedZone(ctx, zoneID) {
		return nil, clierr.NotOwned("zone %s is not managed by this CLI", zoneID)
	}
	records, err := d.gateway.ListRecords(ctx, provider.StripZoneID(zoneID))
	if err != nil {
		return nil, clierr.Remote(err, "could not list records")
	}
	return records, nil
}

func (d *DNSManager) CreateRecord(ctx context.Context, zoneID string, record provider.Record) error {
	return d.change(ctx, zoneID, provider.ChangeCreate, record, "create")
}

func (d *DNSManager) UpdateRecord(ctx context.Context, zoneID string, record provider.Record) error {
	return d.change(ctx, zoneID, provider.ChangeUpsert, record, "update")
}

func (d *DNSManager) DeleteRecord(ctx context.Context, zoneID, name, recordType, value string) error {
	record := provider.Record{Name: name, Type: recordType, Value: value, TTL: deleteRecordTTL}
	return d.change(ctx, zoneID, provider.ChangeDelete, record, "delete")
}

func (d *DNSManager) change(ctx context.Context, zoneID string, action provider.ChangeAction, record provider.Record, verb string) error {
	if record.Name == "" || record.Type == "" || record.Value == "" {
		return clierr.InvalidArgument("record name, type and value are required")
	}
	if record.TTL < 0 {
		return clierr.InvalidArgument("record ttl must not be negative")
	}
	if !d.IsOwnedZone(ctx, zoneID) {
		return clierr.NotOwned("zone %s is not managed by this CLI", zoneID)
	}
	slog.Debug("Submitting record change", "prefix", "manager.DNSManager.change", "zone", zoneID, "action", action, "name", record.Name, "type", record.Type)
	if err := d.gateway.ChangeRecord(ctx, provider.StripZoneID(zoneID), action, record); err != nil {
		return clierr.Remote(err, "failed to %s record %s (%s)", verb, record.Name, record.Type)
	}
	return nil
}
