package aws

import (
	"context"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/pkg/errors"
)

// Route53API is the subset of the Route 53 client the DNS gateway calls.
type Route53API interface {
	CreateHostedZone(ctx context.Context, params *route53.CreateHostedZoneInput, optFns ...func(*route53.Options)) (*route53.CreateHostedZoneOutput, error)
	ChangeTagsForResource(ctx context.Context, params *route53.ChangeTagsForResourceInput, optFns ...func(*route53.Options)) (*route53.ChangeTagsForResourceOutput, error)
	ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListTagsForResource(ctx context.Context, params *route53.ListTagsForResourceInput, optFns ...func(*route53.Options)) (*route53.ListTagsForResourceOutput, error)
	ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Route53Gateway implements provider.DNSGateway. Zone ids passed in must
// already be stripped of their "/hostedzone/" prefix.
type Route53Gateway struct {
	client Route53API
}

func NewRoute53Gateway(client Route53API) *Route53Gateway {
	return &Route53Gateway{client: client}
}

func (g *Route53Gateway) CreateZone(ctx context.Context, name, callerReference string) (provider.Zone, error) {
	output, err := g.client.CreateHostedZone(ctx, &route53.CreateHostedZoneInput{
		Name:            aws.String(name),
		CallerReference: aws.String(callerReference),
		HostedZoneConfig: &types.HostedZoneConfig{
			Comment:     aws.String("CLI-created zone"),
			PrivateZone: false,
		},
	})
	if err != nil {
		return provider.Zone{}, errors.Wrap(err, "Failed to create hosted zone")
	}
	if output.HostedZone == nil {
		return provider.Zone{}, errors.New("create hosted zone returned no zone")
	}
	return toZone(*output.HostedZone), nil
}

func (g *Route53Gateway) TagZone(ctx context.Context, zoneID string, tags []policy.Tag) error {
	addTags := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		addTags = append(addTags, types.Tag{Key: aws.String(tag.Key), Value: aws.String(tag.Value)})
	}
	_, err := g.client.ChangeTagsForResource(ctx, &route53.ChangeTagsForResourceInput{
		ResourceType: types.TagResourceTypeHostedzone,
		ResourceId:   aws.String(zoneID),
		AddTags:      addTags,
	})
	return errors.Wrap(err, "Failed to tag hosted zone")
}

func (g *Route53Gateway) ListZones(ctx context.Context) ([]provider.Zone, error) {
	output, err := g.client.ListHostedZones(ctx, &route53.ListHostedZonesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list hosted zones")
	}
	zones := make([]provider.Zone, 0, len(output.HostedZones))
	for _, zone := range output.HostedZones {
		zones = append(zones, toZone(zone))
	}
	return zones, nil
}

// ZoneTags treats only an access denial as routine; a missing zone is an error.
func (g *Route53Gateway) ZoneTags(ctx context.Context, zoneID string) (provider.FetchOutcome, error) {
	output, err := g.client.ListTagsForResource(ctx, &route53.ListTagsForResourceInput{
		ResourceType: types.TagResourceTypeHostedzone,
		ResourceId:   aws.String(zoneID),
	})
	if err != nil {
		return classifyTagError(err, "hosted zone "+zoneID)
	}
	if output.ResourceTagSet == nil {
		return provider.NotFound(), nil
	}
	tags := make([]policy.Tag, 0, len(output.ResourceTagSet.Tags))
	for _, tag := range output.ResourceTagSet.Tags {
		tags = append(tags, policy.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}
	return provider.Found(tags), nil
}

// ListRecords returns the first page of record sets only.
func (g *Route53Gateway) ListRecords(ctx context.Context, zoneID string) ([]provider.RecordSummary, error) {
	output, err := g.client.ListResourceRecordSets(ctx, &route53.ListResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list record sets")
	}
	records := make([]provider.RecordSummary, 0, len(output.ResourceRecordSets))
	for _, set := range output.ResourceRecordSets {
		summary := provider.RecordSummary{
			Name: aws.ToString(set.Name),
			Type: string(set.Type),
			TTL:  aws.ToInt64(set.TTL),
		}
		for _, rr := range set.ResourceRecords {
			summary.Values = append(summary.Values, aws.ToString(rr.Value))
		}
		records = append(records, summary)
	}
	return records, nil
}

// ChangeRecord submits a batch holding exactly one change.
func (g *Route53Gateway) ChangeRecord(ctx context.Context, zoneID string, action provider.ChangeAction, record provider.Record) error {
	_, err := g.client.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &types.ChangeBatch{
			Changes: []types.Change{
				{
					Action: types.ChangeAction(action),
					ResourceRecordSet: &types.ResourceRecordSet{
						Name:            aws.String(record.Name),
						Type:            types.RRType(record.Type),
						TTL:             aws.Int64(record.TTL),
						ResourceRecords: []types.ResourceRecord{{Value: aws.String(record.Value)}},
					},
				},
			},
		},
	})
	return errors.Wrap(err, "Failed to change record set")
}

func toZone(zone types.HostedZone) provider.Zone {
	return provider.Zone{
		ID:   aws.ToString(zone.Id),
		Name: aws.ToString(zone.Name),
	}
}
