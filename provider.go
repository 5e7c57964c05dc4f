package ansible_inventory

import "context"

// Provider answers the two dynamic-inventory queries over a Source. The
// document is fetched fresh on every call; nothing is cached between
// invocations.
type Provider struct {
	source Source
}

func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// List returns the complete inventory document.
func (p *Provider) List(ctx context.Context) (*Document, error) {
	return p.source.Fetch(ctx)
}

// HostVars returns the variables of a single host. Unknown hosts are not an
// error: the mapping is empty and found is false.
func (p *Provider) HostVars(ctx context.Context, host string) (vars map[string]interface{}, found bool, err error) {
	doc, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	vars, found = doc.HostVars(host)
	return vars, found, nil
}
