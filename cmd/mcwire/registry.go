package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/packet/serverbound"
	"github.com/Versifine/mcwire/internal/registry"
)

func registryCmd() *cobra.Command {
	var snapshot string

	cmd := &cobra.Command{
		Use:   "registry [name]",
		Short: "Inspect a registry snapshot",
		Long: `Without a name, list the registries of the snapshot with their sizes and
the snapshot fingerprint. With a name, list that registry's entries in id
order.

Examples:
  mcwire registry --snapshot registries.yaml
  mcwire registry item --snapshot registries.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := registry.LoadSnapshot(snapshot)
			if err != nil {
				return fmt.Errorf("load registry snapshot: %w", err)
			}
			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetAutoWrapText(false)

			if len(args) == 0 {
				tw.SetHeader([]string{"Registry", "Entries"})
				for _, name := range set.Names() {
					keys, _ := set.Keys(name)
					tw.Append([]string{name, strconv.Itoa(len(keys))})
				}
				tw.SetFooter([]string{"fingerprint", fmt.Sprintf("%016x", set.Fingerprint())})
				tw.Render()
				return nil
			}

			keys, ok := set.Keys(args[0])
			if !ok {
				return fmt.Errorf("unknown registry %q", args[0])
			}
			tw.SetHeader([]string{"ID", "Key"})
			for id, key := range keys {
				tw.Append([]string{strconv.Itoa(id), key})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshot, "snapshot", "configs/registries.yaml", "Registry snapshot file")

	return cmd
}

func packetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packets",
		Short: "List packet ids of both directions",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Flow", "ID", "Packet"})
			tw.SetAutoWrapText(false)
			appendTypes(tw, serverbound.Protocol().Types())
			// Packet ids do not depend on registry contents.
			appendTypes(tw, clientbound.Protocol(registry.NewSet()).Types())
			tw.Render()
			return nil
		},
	}
}

func appendTypes(tw *tablewriter.Table, types []packet.Type) {
	for id, t := range types {
		tw.Append([]string{t.Flow.String(), fmt.Sprintf("0x%02x", id), t.Name})
	}
}
