package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/packet/serverbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

func decodeCmd() *cobra.Command {
	var (
		flow     string
		snapshot string
		framed   bool
	)

	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode one captured frame",
		Long: `Decode one frame given as hex, either as an argument or on stdin.
The frame is [varint id][payload]; with --framed it starts with the varint
length prefix used on TCP.

Examples:
  mcwire decode --flow serverbound 03000000000000002a
  xxd -p capture.bin | mcwire decode --flow clientbound --snapshot registries.yaml --framed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			switch {
			case len(args) == 1:
				input = args[0]
			case !term.IsTerminal(int(os.Stdin.Fd())):
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				input = string(data)
			default:
				return fmt.Errorf("no frame given")
			}
			data, err := parseHex(input)
			if err != nil {
				return err
			}
			var set *registry.Set
			if snapshot != "" {
				if set, err = registry.LoadSnapshot(snapshot); err != nil {
					return fmt.Errorf("load registry snapshot: %w", err)
				}
			}
			res, err := decodeFrame(flow, set, data, framed)
			res.render(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&flow, "flow", "f", "serverbound", "Packet direction: serverbound or clientbound")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Registry snapshot, required for clientbound frames")
	cmd.Flags().BoolVar(&framed, "framed", false, "Input starts with a varint length prefix")

	return cmd
}

// parseHex accepts hex with any whitespace in between.
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

type decodeResult struct {
	rows [][]string
}

func (r decodeResult) add(key, value string) decodeResult {
	r.rows = append(r.rows, []string{key, value})
	return r
}

func (r decodeResult) render(w io.Writer) {
	if len(r.rows) == 0 {
		return
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Field", "Value"})
	tw.SetAutoWrapText(false)
	tw.AppendBulk(r.rows)
	tw.Render()
}

func decodeFrame(flow string, set *registry.Set, data []byte, framed bool) (decodeResult, error) {
	var res decodeResult
	var f *protocol.Frame
	var err error
	if framed {
		f, err = protocol.ReadFrame(bytes.NewReader(data), 0)
	} else {
		f, err = protocol.ParseFrame(data)
	}
	if err != nil {
		return res, fmt.Errorf("read frame: %w", err)
	}
	res = res.add("id", fmt.Sprintf("0x%02x", f.ID)).add("payload", fmt.Sprintf("%d bytes", len(f.Payload)))

	switch flow {
	case "serverbound":
		return describe(res, serverbound.Protocol(), f)
	case "clientbound":
		if set == nil {
			return res, fmt.Errorf("clientbound frames need --snapshot")
		}
		res = res.add("fingerprint", fmt.Sprintf("%016x", set.Fingerprint()))
		return describe(res, clientbound.Protocol(set), f)
	default:
		return res, fmt.Errorf("unknown flow %q", flow)
	}
}

func describe[L any](res decodeResult, p *packet.Protocol[L], f *protocol.Frame) (decodeResult, error) {
	if t, ok := p.TypeOf(f.ID); ok {
		res = res.add("packet", t.Name)
	}
	pkt, err := p.Unmarshal(f)
	if err != nil {
		res = res.add("error", err.Error()).add("kind", protocol.KindOf(err).String())
		if field := protocol.Field(err); field != "" {
			res = res.add("field", field)
		}
		return res, fmt.Errorf("decode failed")
	}
	return res.add("value", fmt.Sprintf("%+v", pkt)), nil
}
