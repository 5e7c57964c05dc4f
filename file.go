package ansible_inventory

import (
	"context"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// FileSource reads the inventory document from a YAML or JSON file holding
// the same group/hosts/children/vars shape the --list output uses.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context) (*Document, error) {
	data, err := ioutil.ReadFile(s.Path)
	if err != nil {
		return nil, sourceError(s.Name(), err)
	}

	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, sourceError(s.Name(), errors.Wrapf(err, "parse %s", s.Path))
	}

	if doc.Groups["all"] == nil {
		return nil, sourceError(s.Name(), errors.Errorf("%s has no all group", s.Path))
	}

	return doc, nil
}
