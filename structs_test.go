package ansible_inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Groups: map[string]*Group{
			"all": {
				Hosts: []string{"app1.example.com", "app2.example.com"},
				Vars:  map[string]interface{}{"ansible_user": "deploy"},
			},
			"appservers": {
				Hosts: []string{"app1.example.com", "app2.example.com"},
			},
			"staging": {
				Children: []string{"appservers"},
			},
		},
		Meta: &Meta{
			Hostvars: map[string]map[string]interface{}{
				"app1.example.com": {"ansible_host": "10.1.2.3"},
			},
		},
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed := &Document{}
	require.NoError(t, json.Unmarshal(data, parsed))

	assert.Len(t, parsed.Groups, 3)
	assert.Equal(t, doc.Groups["all"].Hosts, parsed.Groups["all"].Hosts)
	assert.Equal(t, doc.Groups["staging"].Children, parsed.Groups["staging"].Children)
	require.NotNil(t, parsed.Meta)
	assert.Equal(t, "10.1.2.3", parsed.Meta.Hostvars["app1.example.com"]["ansible_host"])

	// _meta must serialize under the reserved key, not as a group
	top := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(data, &top))
	assert.Contains(t, top, "_meta")
}

func TestDocumentUnmarshalMapShapedGroups(t *testing.T) {
	data := []byte(`{
		"all": {"hosts": {"a.example.com": {"ansible_host": "10.0.0.1"}, "b.example.com": null}},
		"appservers": {"hosts": ["a.example.com", "b.example.com"]},
		"staging": {"children": {"appservers": {}}}
	}`)

	doc := &Document{}
	require.NoError(t, json.Unmarshal(data, doc))

	assert.Equal(t, []string{"a.example.com", "b.example.com"}, doc.Groups["all"].Hosts)
	assert.Equal(t, []string{"appservers"}, doc.Groups["staging"].Children)

	// inline hostvars are folded into _meta
	require.NotNil(t, doc.Meta)
	vars, found := doc.HostVars("a.example.com")
	assert.True(t, found)
	assert.Equal(t, "10.0.0.1", vars["ansible_host"])

	_, found = doc.HostVars("b.example.com")
	assert.False(t, found)

	assert.NoError(t, doc.Validate())
}

func TestDocumentUnmarshalMetaOverridesInlineHostvars(t *testing.T) {
	data := []byte(`{
		"all": {"hosts": {"a.example.com": {"ansible_host": "10.0.0.1"}}},
		"_meta": {"hostvars": {"a.example.com": {"ansible_host": "10.9.9.9"}}}
	}`)

	doc := &Document{}
	require.NoError(t, json.Unmarshal(data, doc))
	assert.Equal(t, "10.9.9.9", doc.Meta.Hostvars["a.example.com"]["ansible_host"])
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sampleDocument().Validate())

	noAll := sampleDocument()
	delete(noAll.Groups, "all")
	assert.Error(t, noAll.Validate())

	strayHost := sampleDocument()
	strayHost.Groups["appservers"].Hosts = append(strayHost.Groups["appservers"].Hosts, "ghost.example.com")
	assert.Error(t, strayHost.Validate())

	strayChild := sampleDocument()
	strayChild.Groups["staging"].Children = []string{"missing"}
	assert.Error(t, strayChild.Validate())

	strayVars := sampleDocument()
	strayVars.Meta.Hostvars["ghost.example.com"] = map[string]interface{}{"x": 1}
	assert.Error(t, strayVars.Validate())
}

func TestDocumentHostVars(t *testing.T) {
	doc := sampleDocument()

	vars, found := doc.HostVars("app1.example.com")
	assert.True(t, found)
	assert.Equal(t, map[string]interface{}{"ansible_host": "10.1.2.3"}, vars)

	// a known host without hostvars and an unknown host look the same
	vars, found = doc.HostVars("app2.example.com")
	assert.False(t, found)
	assert.Empty(t, vars)

	vars, found = doc.HostVars("unknown.example.com")
	assert.False(t, found)
	assert.NotNil(t, vars)
	assert.Empty(t, vars)

	noMeta := sampleDocument()
	noMeta.Meta = nil
	vars, found = noMeta.HostVars("app1.example.com")
	assert.False(t, found)
	assert.Empty(t, vars)
}
