package cmd

import (
	"platform-cli/config"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/provider"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateZone(t *testing.T) {
	h := newHarness(t)
	h.dns.On("CreateZone", mock.Anything, "example.com").
		Return(provider.Zone{ID: "/hostedzone/Z1", Name: "example.com."}, nil)

	out := h.run("create-zone", "--zone_name", "example.com")
	assert.Equal(t, "Success: created zone example.com (/hostedzone/Z1).\n", out)
}

func TestListZones(t *testing.T) {
	h := newHarness(t)
	h.dns.On("ListZones", mock.Anything).Return([]provider.Zone{{ID: "/hostedzone/Z1", Name: "example.com."}}, nil)

	assert.Equal(t, "example.com. - /hostedzone/Z1\n", h.run("list-zones"))
}

func TestListRecords(t *testing.T) {
	h := newHarness(t)
	h.dns.On("ListRecords", mock.Anything, "Z1").Return([]provider.RecordSummary{
		{Name: "example.com.", Type: "NS", TTL: 172800, Values: []string{"ns-1.", "ns-2."}},
		{Name: "alias.example.com.", Type: "A"},
	}, nil)

	out := h.run("list-records", "--zone_id", "Z1")
	assert.Equal(t, "example.com. - NS - 172800 - ns-1.,ns-2.\nalias.example.com. - A -  - \n", out)
}

func TestListRecords_NotOwned(t *testing.T) {
	h := newHarness(t)
	h.dns.On("ListRecords", mock.Anything, "Z9").Return(nil, clierr.NotOwned("zone Z9 is not managed by this CLI"))

	assert.Equal(t, "Error: zone Z9 is not managed by this CLI.\n", h.run("list-records", "--zone_id", "Z9"))
}

func TestRecordChanges(t *testing.T) {
	h := newHarness(t)
	h.dns.On("CreateRecord", mock.Anything, "Z1", provider.Record{Name: "www.example.com", Type: "A", Value: "1.2.3.4", TTL: 300}).Return(nil)
	out := h.run("create-record", "--zone_id", "Z1", "--name", "www.example.com", "--type", "A", "--value", "1.2.3.4")
	assert.Equal(t, "Success: created record www.example.com (A) in Z1.\n", out)

	h = newHarness(t)
	h.dns.On("UpdateRecord", mock.Anything, "Z1", provider.Record{Name: "www.example.com", Type: "A", Value: "5.6.7.8", TTL: 60}).Return(nil)
	out = h.run("update-record", "--zone_id", "Z1", "--name", "www.example.com", "--type", "A", "--value", "5.6.7.8", "--ttl", "60")
	assert.Equal(t, "Success: updated record www.example.com (A) in Z1.\n", out)

	h = newHarness(t)
	h.dns.On("DeleteRecord", mock.Anything, "Z1", "www.example.com", "A", "5.6.7.8").Return(nil)
	out = h.run("delete-record", "--zone_id", "Z1", "--name", "www.example.com", "--type", "A", "--value", "5.6.7.8")
	assert.Equal(t, "Success: deleted record www.example.com (A) in Z1.\n", out)
}

func TestCreateRecord_ZeroTTLIsSentAsGiven(t *testing.T) {
	h := newHarness(t)
	h.dns.On("CreateRecord", mock.Anything, "Z1", provider.Record{Name: "www.example.com", Type: "A", Value: "1.2.3.4", TTL: 0}).Return(nil)

	out := h.run("create-record", "--zone_id", "Z1", "--name", "www.example.com", "--type", "A", "--value", "1.2.3.4", "--ttl", "0")
	assert.Equal(t, "Success: created record www.example.com (A) in Z1.\n", out)
	h.dns.AssertExpectations(t)
}

func TestDeleteRecord_HasNoTTLFlag(t *testing.T) {
	newHarness(t)
	root := newRootCmd(&app{cfg: &config.Config{}})

	deleteCmd, _, err := root.Find([]string{"delete-record"})
	require.NoError(t, err)
	assert.Nil(t, deleteCmd.Flags().Lookup("ttl"))

	createCmd, _, err := root.Find([]string{"create-record"})
	require.NoError(t, err)
	assert.Equal(t, "300", createCmd.Flags().Lookup("ttl").DefValue)
}
