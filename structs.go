package ansible_inventory

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Group is a named collection of hosts and/or child groups sharing variables.
type Group struct {
	Hosts    []string               `json:"hosts,omitempty"`
	Children []string               `json:"children,omitempty"`
	Vars     map[string]interface{} `json:"vars,omitempty"`
}

// Meta carries per-host variables in one batch under the reserved _meta key,
// so the consuming tool does not have to issue one --host call per host.
type Meta struct {
	Hostvars map[string]map[string]interface{} `json:"hostvars"`
}

// Document is a complete dynamic inventory: groups keyed by name plus the
// reserved _meta entry. Meta is kept out of Groups so group iteration never
// has to special-case the reserved key.
type Document struct {
	Groups map[string]*Group
	Meta   *Meta
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Groups)+1)
	for name, group := range d.Groups {
		out[name] = group
	}
	if d.Meta != nil {
		out["_meta"] = d.Meta
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both wire shapes of a group: the dynamic-inventory
// form (hosts and children as lists, hostvars batched under _meta) and the
// static inventory form (hosts and children as mappings, hostvars inline on
// the host). Inline hostvars are folded into Meta; _meta stays authoritative
// and overrides them.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	metaRaw, hasMeta := raw["_meta"]
	delete(raw, "_meta")

	d.Groups = make(map[string]*Group, len(raw))
	hostvars := map[string]map[string]interface{}{}
	for name, msg := range raw {
		group, inline, err := decodeGroup(msg)
		if err != nil {
			return errors.Wrapf(err, "unmarshal group %s", name)
		}
		d.Groups[name] = group
		for host, vars := range inline {
			hostvars[host] = vars
		}
	}

	if hasMeta {
		meta := &Meta{}
		if err := json.Unmarshal(metaRaw, meta); err != nil {
			return errors.Wrap(err, "unmarshal _meta")
		}
		for host, vars := range meta.Hostvars {
			hostvars[host] = vars
		}
	}

	if hasMeta || len(hostvars) > 0 {
		d.Meta = &Meta{Hostvars: hostvars}
	} else {
		d.Meta = nil
	}

	return nil
}

func decodeGroup(data []byte) (*Group, map[string]map[string]interface{}, error) {
	var raw struct {
		Hosts    json.RawMessage        `json:"hosts"`
		Children json.RawMessage        `json:"children"`
		Vars     map[string]interface{} `json:"vars"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	group := &Group{Vars: raw.Vars}
	var hostvars map[string]map[string]interface{}

	if len(raw.Hosts) > 0 {
		if err := json.Unmarshal(raw.Hosts, &group.Hosts); err != nil {
			byName := map[string]map[string]interface{}{}
			if err := json.Unmarshal(raw.Hosts, &byName); err != nil {
				return nil, nil, errors.Wrap(err, "hosts is neither a list nor a mapping")
			}
			hostvars = map[string]map[string]interface{}{}
			for host, vars := range byName {
				group.Hosts = append(group.Hosts, host)
				if len(vars) > 0 {
					hostvars[host] = vars
				}
			}
			sort.Strings(group.Hosts)
		}
	}

	if len(raw.Children) > 0 {
		if err := json.Unmarshal(raw.Children, &group.Children); err != nil {
			byName := map[string]json.RawMessage{}
			if err := json.Unmarshal(raw.Children, &byName); err != nil {
				return nil, nil, errors.Wrap(err, "children is neither a list nor a mapping")
			}
			for child := range byName {
				group.Children = append(group.Children, child)
			}
			sort.Strings(group.Children)
		}
	}

	return group, hostvars, nil
}

// Validate checks the consuming tool's contract: every host referenced by a
// group or by _meta.hostvars must appear in the all group's host list, and
// every child reference must point at a defined group.
func (d *Document) Validate() error {
	all := d.Groups["all"]
	if all == nil {
		return errors.New("inventory has no all group")
	}

	known := make(map[string]bool, len(all.Hosts))
	for _, host := range all.Hosts {
		known[host] = true
	}

	for name, group := range d.Groups {
		if name == "all" {
			continue
		}
		for _, host := range group.Hosts {
			if !known[host] {
				return errors.Errorf("host %s of group %s is missing from the all group", host, name)
			}
		}
		for _, child := range group.Children {
			if d.Groups[child] == nil {
				return errors.Errorf("group %s references undefined child group %s", name, child)
			}
		}
	}

	if d.Meta != nil {
		for host := range d.Meta.Hostvars {
			if !known[host] {
				return errors.Errorf("hostvars entry %s is missing from the all group", host)
			}
		}
	}

	return nil
}

// HostVars returns the _meta.hostvars entry for host. The second return
// value distinguishes a host with no variables from an unknown host; callers
// serving the Ansible --host contract treat both the same and print {}.
func (d *Document) HostVars(host string) (map[string]interface{}, bool) {
	if d.Meta == nil {
		return map[string]interface{}{}, false
	}
	vars, ok := d.Meta.Hostvars[host]
	if !ok {
		return map[string]interface{}{}, false
	}
	return vars, true
}

// YmlGroup is the static YAML inventory rendering of a group, written by the
// export command. Hosts map to their hostvars so the exported file is
// self-contained without a _meta section.
type YmlGroup struct {
	Hosts    map[string]map[string]interface{} `yaml:"hosts,omitempty"`
	Children map[string]*YmlGroup              `yaml:"children,omitempty"`
	Vars     map[string]interface{}            `yaml:"vars,omitempty"`
}

type YmlInventory map[string]*YmlGroup
