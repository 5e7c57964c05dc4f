package ansible_inventory

import "context"

// StaticSource serves the built-in example inventory: three hosts split
// across webservers and databases, both grouped under production. It is the
// default source and exists so the binary works with no backend configured.
type StaticSource struct{}

func (StaticSource) Name() string { return "static" }

func (StaticSource) Fetch(ctx context.Context) (*Document, error) {
	return &Document{
		Groups: map[string]*Group{
			"all": {
				Hosts: []string{"web1.example.com", "web2.example.com", "db1.example.com"},
				Vars: map[string]interface{}{
					"ansible_user":               "ubuntu",
					"ansible_python_interpreter": "/usr/bin/python3",
				},
			},
			"webservers": {
				Hosts: []string{"web1.example.com", "web2.example.com"},
				Vars: map[string]interface{}{
					"http_port":  80,
					"https_port": 443,
				},
			},
			"databases": {
				Hosts: []string{"db1.example.com"},
				Vars: map[string]interface{}{
					"db_port": 5432,
				},
			},
			"production": {
				Children: []string{"webservers", "databases"},
				Vars: map[string]interface{}{
					"environment": "production",
				},
			},
		},
		Meta: &Meta{
			Hostvars: map[string]map[string]interface{}{
				"web1.example.com": {
					"ansible_host": "192.168.1.10",
					"server_id":    1,
				},
				"web2.example.com": {
					"ansible_host": "192.168.1.11",
					"server_id":    2,
				},
				"db1.example.com": {
					"ansible_host": "192.168.1.20",
					"server_id":    10,
					"db_master":    true,
				},
			},
		},
	}, nil
}
