package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk/catalog"
	"github.com/spf13/cobra"
)

func (a *app) flightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Browse the flight catalog",
		Long:  "Browse the flight catalog directly. No API key is needed.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every flight",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			return a.writeFlightTable(cat.All())
		},
	}

	show := &cobra.Command{
		Use:   "show <flight-number>",
		Short: "Show one flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			rec, ok := cat.Lookup(args[0])
			if !ok {
				return errors.Errorf("flight %s not found", args[0])
			}
			fmt.Fprintln(a.out, catalog.Format(rec))
			return nil
		},
	}

	var from, to string
	search := &cobra.Command{
		Use:   "search",
		Short: "Find flights by departure and arrival city",
		Example: `  flightdesk flights search --from "new york"
  flightdesk flights search --from chicago --to miami`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			found := cat.Search(from, to)
			if len(found) == 0 {
				fmt.Fprintf(a.out, "No flights found from %s to %s.\n", orAny(from), orAny(to))
				return nil
			}
			return a.writeFlightTable(found)
		},
	}
	search.Flags().StringVar(&from, "from", "", "Departure city substring")
	search.Flags().StringVar(&to, "to", "", "Arrival city substring")

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the catalog as YAML, in the format accepted by --catalog-file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			return catalog.Write(a.out, cat)
		},
	}

	cmd.AddCommand(list, show, search, export)
	return cmd
}

func (a *app) writeFlightTable(records []catalog.FlightRecord) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tFROM\tTO\tDEPARTS\tARRIVES\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s %s\n",
			r.ID, r.Origin, r.Destination, r.Departure, r.Arrival,
			statusMarker(catalog.Classify(r)), r.Status)
	}
	return w.Flush()
}

func orAny(s string) string {
	if s == "" {
		return "anywhere"
	}
	return s
}
