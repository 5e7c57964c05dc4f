package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	inventory "github.com/inhuman/ansible-inventory"
)

var (
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the inventory as a static YAML file",
		Long: `Fetches the selected source's document and writes it as a static YAML inventory, with hostvars attached to the hosts of the all group.

Child groups are written as name references only; their hosts and vars stay
on their own top-level entries.`,
		RunE: runExport,
	}

	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	source, err := buildSource()
	if err != nil {
		return err
	}

	doc, err := source.Fetch(context.Background())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := inventory.WriteYmlInventory(w, doc); err != nil {
		return err
	}
	if exportOutput != "" {
		log.Info().Msgf("exported %s inventory to %s", source.Name(), exportOutput)
	}
	return nil
}
