package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	inventory "github.com/inhuman/ansible-inventory"
)

var (
	rootCmd = &cobra.Command{
		Use:   "ansible-inventory",
		Short: "Ansible dynamic inventory provider",
		Long: `Dynamic inventory provider for Ansible.

Prints the full inventory document on --list and the variables of a single
host on --host, as indented JSON on standard output. The document comes from
the selected source: the built-in static example, a YAML/JSON inventory file,
a Consul KV entry or a Terraform state file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	listFlag   bool
	hostFlag   string
	strictFlag bool

	sourceFlag   string
	pathFlag     string
	projectFlag  string
	consulAddr   string
	consulDC     string
	consulPrefix string
)

func init() {
	rootCmd.Flags().BoolVar(&listFlag, "list", false, "print the full inventory document")
	rootCmd.Flags().StringVar(&hostFlag, "host", "", "print the variables of one host")
	rootCmd.Flags().BoolVar(&strictFlag, "strict", false, "validate the document before printing")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&sourceFlag, "source", "static", "inventory source: static, file, consul or tfstate")
	pf.StringVar(&pathFlag, "path", "", "inventory or state file (file and tfstate sources)")
	pf.StringVar(&projectFlag, "project", "", "project name (consul and tfstate sources)")
	pf.StringVar(&consulAddr, "consul-addr", "127.0.0.1:8500", "Consul address (consul source)")
	pf.StringVar(&consulDC, "consul-dc", "", "Consul datacenter (consul source)")
	pf.StringVar(&consulPrefix, "consul-prefix", "tfstate", "Consul KV key prefix (consul source)")
}

func buildSource() (inventory.Source, error) {
	switch sourceFlag {
	case "static", "":
		return inventory.StaticSource{}, nil
	case "file":
		if pathFlag == "" {
			return nil, errors.New("file source needs --path")
		}
		return &inventory.FileSource{Path: pathFlag}, nil
	case "consul":
		return &inventory.ConsulSource{
			Addr:       consulAddr,
			Datacenter: consulDC,
			Prefix:     consulPrefix,
			Project:    projectFlag,
		}, nil
	case "tfstate":
		if pathFlag == "" {
			return nil, errors.New("tfstate source needs --path")
		}
		return &inventory.TerraformSource{Path: pathFlag, Project: projectFlag}, nil
	default:
		return nil, errors.Errorf("unknown source %s", sourceFlag)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !listFlag && hostFlag == "" {
		return cmd.Help()
	}

	source, err := buildSource()
	if err != nil {
		return err
	}
	provider := inventory.NewProvider(source)
	ctx := context.Background()

	if listFlag {
		doc, err := provider.List(ctx)
		if err != nil {
			return err
		}
		if strictFlag {
			if err := doc.Validate(); err != nil {
				return err
			}
		}
		return printJSON(cmd, doc)
	}

	vars, _, err := provider.HostVars(ctx, hostFlag)
	if err != nil {
		return err
	}
	return printJSON(cmd, vars)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
