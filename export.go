package ansible_inventory

import (
	"io"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ToYmlInventory renders the document as a static YAML inventory. Hostvars
// from _meta are attached to the hosts of the all group; other groups list
// their hosts bare and keep their own vars.
func (d *Document) ToYmlInventory() YmlInventory {
	out := make(YmlInventory, len(d.Groups))

	for name, group := range d.Groups {
		yg := &YmlGroup{Vars: group.Vars}

		if len(group.Hosts) > 0 {
			yg.Hosts = make(map[string]map[string]interface{}, len(group.Hosts))
			for _, host := range group.Hosts {
				var vars map[string]interface{}
				if name == "all" && d.Meta != nil {
					vars = d.Meta.Hostvars[host]
				}
				yg.Hosts[host] = vars
			}
		}

		if len(group.Children) > 0 {
			yg.Children = make(map[string]*YmlGroup, len(group.Children))
			for _, child := range group.Children {
				yg.Children[child] = &YmlGroup{}
			}
		}

		out[name] = yg
	}

	return out
}

// WriteYmlInventory writes the document to w as a static YAML inventory
// file.
func WriteYmlInventory(w io.Writer, d *Document) error {
	data, err := yaml.Marshal(d.ToYmlInventory())
	if err != nil {
		return errors.Wrap(err, "marshal yaml inventory")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "write yaml inventory")
}
