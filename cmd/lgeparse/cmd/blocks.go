package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/lgeparse/pkg/block"
	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/parser"
)

// maxListedOffsets bounds the offsets printed per tag in table output
const maxListedOffsets = 8

func newBlocksCmd(a *app) *cobra.Command {
	var format string
	var byOffset bool

	blocksCmd := &cobra.Command{
		Use:   "blocks <input>",
		Short: "List the tagged blocks found in a league file",
		Long: `List every known block tag in a league file with its count and offsets.

Example:
  lgeparse blocks NFLPI95.lge
  lgeparse blocks NFLPI95.lge --by-offset
  lgeparse blocks NFLPI95.lge -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			res, err := a.container.Parser().ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputBlocksJSON(cmd.OutOrStdout(), res)
			case "table":
				if byOffset {
					return outputPositionsTable(cmd.OutOrStdout(), block.Sorted(res.Blocks))
				}
				return outputBlocksTable(cmd.OutOrStdout(), res)
			default:
				return fmt.Errorf("unknown output format %q (want table or json)", format)
			}
		},
	}

	blocksCmd.Flags().StringVarP(&format, "format", "o", "table", "output format (table or json)")
	blocksCmd.Flags().BoolVar(&byOffset, "by-offset", false, "list every block in file order (table output)")
	return blocksCmd
}

func outputBlocksJSON(w io.Writer, res *parser.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Source  parser.SourceInfo  `json:"source"`
		Blocks  []block.Occurrence `json:"blocks"`
		Ignored league.Counts      `json:"ignored"`
	}{res.Source, res.Blocks, res.Ignored})
}

func outputBlocksTable(w io.Writer, res *parser.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Source:\t%s (%s, %d bytes)\n", res.Source.Path, res.Source.Encoding, res.Source.Size)
	fmt.Fprintf(tw, "Digest:\t%s\n\n", res.Source.Digest)

	fmt.Fprintln(tw, "TAG\tCOUNT\tOFFSETS")
	for _, occ := range res.Blocks {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", occ.Tag, occ.Count, formatOffsets(occ.Offsets))
	}

	return tw.Flush()
}

func outputPositionsTable(w io.Writer, positions []block.Position) error {
	if len(positions) == 0 {
		_, err := fmt.Fprintln(w, "No blocks found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tTAG")
	for _, p := range positions {
		fmt.Fprintf(tw, "0x%06x\t%s\n", p.Offset, p.Tag)
	}
	return tw.Flush()
}

func formatOffsets(offsets []int) string {
	if len(offsets) == 0 {
		return "-"
	}

	shown := offsets
	if len(shown) > maxListedOffsets {
		shown = shown[:maxListedOffsets]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, off := range shown {
		parts = append(parts, "0x"+strconv.FormatInt(int64(off), 16))
	}
	if len(offsets) > len(shown) {
		parts = append(parts, fmt.Sprintf("(+%d more)", len(offsets)-len(shown)))
	}
	return strings.Join(parts, ", ")
}
