package main

import (
	"github.com/rickchristie/flightdesk/airline"
	"github.com/spf13/cobra"
)

func (a *app) toolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool descriptors advertised to the model as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			registry, err := airline.NewRegistry(cat)
			if err != nil {
				return err
			}
			return registry.WriteYAML(a.out)
		},
	}
}
