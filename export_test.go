package ansible_inventory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestToYmlInventory(t *testing.T) {
	yml := sampleDocument().ToYmlInventory()

	all := yml["all"]
	require.NotNil(t, all)
	assert.Len(t, all.Hosts, 2)
	assert.Equal(t, "10.1.2.3", all.Hosts["app1.example.com"]["ansible_host"])
	assert.Nil(t, all.Hosts["app2.example.com"])

	// hostvars are attached under all only
	assert.Nil(t, yml["appservers"].Hosts["app1.example.com"])
	assert.Contains(t, yml["staging"].Children, "appservers")
}

func TestFileSourceReadsExportedInventory(t *testing.T) {
	doc, err := StaticSource{}.Fetch(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYmlInventory(&buf, doc))

	path, cleanup := writeTempInventory(t, "exported.yml", buf.String())
	defer cleanup()

	parsed, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())

	assert.ElementsMatch(t, doc.Groups["all"].Hosts, parsed.Groups["all"].Hosts)
	assert.ElementsMatch(t, doc.Groups["webservers"].Hosts, parsed.Groups["webservers"].Hosts)
	assert.ElementsMatch(t, doc.Groups["production"].Children, parsed.Groups["production"].Children)

	assert.Equal(t, "ubuntu", parsed.Groups["all"].Vars["ansible_user"])
	assert.EqualValues(t, 80, parsed.Groups["webservers"].Vars["http_port"])

	require.NotNil(t, parsed.Meta)
	for host := range doc.Meta.Hostvars {
		assert.Contains(t, parsed.Meta.Hostvars, host)
	}
	vars, found := parsed.HostVars("web1.example.com")
	assert.True(t, found)
	assert.Equal(t, "192.168.1.10", vars["ansible_host"])
	assert.EqualValues(t, 1, vars["server_id"])
}

func TestWriteYmlInventoryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYmlInventory(&buf, sampleDocument()))

	parsed := YmlInventory{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))

	require.NotNil(t, parsed["all"])
	assert.Contains(t, parsed["all"].Hosts, "app1.example.com")
	assert.Equal(t, "deploy", parsed["all"].Vars["ansible_user"])
	assert.Contains(t, parsed["staging"].Children, "appservers")
}
