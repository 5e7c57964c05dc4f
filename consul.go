package ansible_inventory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
)

// ConsulSource fetches the inventory document from a Consul KV entry keyed
// <prefix>:<project>. The stored value is the document JSON.
type ConsulSource struct {
	Addr       string
	Datacenter string
	Prefix     string
	Project    string
}

func (s *ConsulSource) Name() string { return "consul" }

func (s *ConsulSource) Fetch(ctx context.Context) (*Document, error) {
	client, err := api.NewClient(&api.Config{
		Address: s.Addr,
		Scheme:  "http",
	})
	if err != nil {
		return nil, sourceError(s.Name(), err)
	}

	key := strings.Join([]string{s.Prefix, s.Project}, ":")
	opts := &api.QueryOptions{Datacenter: s.Datacenter}
	kv, _, err := client.KV().Get(key, opts.WithContext(ctx))
	if err != nil {
		return nil, sourceError(s.Name(), errors.Wrapf(err, "get %s", key))
	}
	if kv == nil {
		return nil, sourceError(s.Name(), errors.Errorf("key %s not found", key))
	}

	doc := &Document{}
	if err := json.Unmarshal(kv.Value, doc); err != nil {
		return nil, sourceError(s.Name(), errors.Wrapf(err, "decode %s", key))
	}

	return doc, nil
}
