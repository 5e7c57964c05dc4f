package ansible_inventory

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"reflect"
	"strings"

	"github.com/hashicorp/terraform/terraform"
	"github.com/pkg/errors"
)

// vmResourcePrefixes selects the state resources that become inventory
// hosts. Overridable per source for other providers.
var vmResourcePrefixes = []string{
	"vsphere_virtual_machine.host",
}

// TerraformSource derives the inventory from a Terraform state file. Each
// module carrying a meta output with a group name contributes one group; its
// VM resources become hosts keyed by guest IP, with the machine name kept in
// _meta.hostvars.
type TerraformSource struct {
	Path    string
	Project string

	// VMPrefixes overrides vmResourcePrefixes when set.
	VMPrefixes []string
}

func (s *TerraformSource) Name() string { return "tfstate" }

func (s *TerraformSource) Fetch(ctx context.Context) (*Document, error) {
	data, err := ioutil.ReadFile(s.Path)
	if err != nil {
		return nil, sourceError(s.Name(), err)
	}

	state := &terraform.State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, sourceError(s.Name(), errors.Wrapf(err, "decode %s", s.Path))
	}

	prefixes := s.VMPrefixes
	if len(prefixes) == 0 {
		prefixes = vmResourcePrefixes
	}

	doc, err := ConvertState(s.Project, state, prefixes)
	if err != nil {
		return nil, sourceError(s.Name(), err)
	}
	return doc, nil
}

// ConvertState builds an inventory document from a Terraform state. Hosts
// are added both to their module's group and to all, so the resulting
// document satisfies Validate.
func ConvertState(project string, state *terraform.State, vmPrefixes []string) (*Document, error) {
	doc := &Document{
		Groups: map[string]*Group{
			"all": {
				Hosts:    []string{},
				Children: []string{},
				Vars: map[string]interface{}{
					"project": project,
				},
			},
		},
		Meta: &Meta{Hostvars: map[string]map[string]interface{}{}},
	}
	all := doc.Groups["all"]

	if len(state.Modules) < 1 {
		return nil, errors.New("state has no modules")
	}

	for _, m := range state.Modules {
		if len(m.Path) < 2 {
			// root module holds no hosts
			continue
		}

		outputs := moduleOutputs(m, state.Modules)
		if outputs["meta"] == nil || outputs["meta"].Value == nil {
			return nil, errors.Errorf("module %s has no meta output", strings.Join(m.Path, "."))
		}

		groupVars, ok := outputs["meta"].Value.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("module %s: meta output is not a mapping", strings.Join(m.Path, "."))
		}

		groupName, _ := groupVars["group"].(string)
		if groupName == "" {
			return nil, errors.Errorf("module %s: meta output has no group", strings.Join(m.Path, "."))
		}

		for resourceName, resource := range m.Resources {
			if !isVM(resourceName, vmPrefixes) {
				continue
			}

			if resource.Primary == nil || resource.Primary.Attributes == nil {
				return nil, errors.Errorf("resource %s (%s) has no primary attributes", resourceName, groupName)
			}
			attrs := resource.Primary.Attributes

			host := attrs["guest_ip_addresses.0"]
			if host == "" {
				host = attrs["default_ip_address"]
			}
			if host == "" {
				return nil, errors.Errorf("resource %s (%s) has no IP address attribute", resourceName, groupName)
			}
			if attrs["name"] == "" {
				return nil, errors.Errorf("resource %s (%s) has no name attribute", resourceName, groupName)
			}

			if doc.Groups[groupName] == nil {
				vars := make(map[string]interface{}, len(groupVars))
				for k, v := range groupVars {
					if k != "group" {
						vars[k] = v
					}
				}
				doc.Groups[groupName] = &Group{
					Hosts:    []string{},
					Children: []string{},
					Vars:     vars,
				}
				all.Children = append(all.Children, groupName)
			}

			doc.Groups[groupName].Hosts = append(doc.Groups[groupName].Hosts, host)
			all.Hosts = append(all.Hosts, host)

			doc.Meta.Hostvars[host] = map[string]interface{}{
				"hostname": attrs["name"],
			}
		}
	}

	return doc, nil
}

func isVM(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// moduleOutputs resolves a module's outputs, walking up to the parent module
// when the module itself declares none.
func moduleOutputs(module *terraform.ModuleState, modules []*terraform.ModuleState) map[string]*terraform.OutputState {
	if len(module.Path) == 1 {
		return nil
	}

	if len(module.Outputs) > 0 {
		return module.Outputs
	}

	parentPath := module.Path[:len(module.Path)-1]
	for _, m := range modules {
		if reflect.DeepEqual(m.Path, parentPath) {
			return moduleOutputs(m, modules)
		}
	}

	return nil
}
