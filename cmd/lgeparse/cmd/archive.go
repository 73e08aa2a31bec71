package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/lgeparse/pkg/archive"
	"github.com/ssargent/lgeparse/pkg/render"
)

func newArchiveCmd(a *app) *cobra.Command {
	var archiveDir string

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Store and retrieve decoded leagues",
		Long: `Keep decoded leagues in a local archive so they can be rendered again
without the original file. Identical files are archived once.`,
	}
	archiveCmd.PersistentFlags().StringVar(&archiveDir, "archive-dir", "", "archive directory (defaults to archive.dir from config)")

	open := func() (*archive.Archive, error) {
		return a.container.OpenArchive(archiveDir)
	}

	archiveCmd.AddCommand(
		newArchivePutCmd(a, open),
		newArchiveGetCmd(a, open),
		newArchiveListCmd(open),
		newArchiveDeleteCmd(open),
	)
	return archiveCmd
}

type archiveOpener func() (*archive.Archive, error)

func newArchivePutCmd(a *app, open archiveOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "put <input>",
		Short: "Decode a league file and archive it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			res, err := a.container.Parser().ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			arch, err := open()
			if err != nil {
				return err
			}
			defer arch.Close()

			entry, created, err := arch.Put(cmd.Context(), archive.Entry{
				Digest:   res.Source.Digest,
				Source:   filepath.Base(args[0]),
				Encoding: res.Source.Encoding,
				League:   res.Store,
			})
			if err != nil {
				return fmt.Errorf("failed to archive league: %w", err)
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %s (%s)\n", entry.ID, entry.Digest)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Already archived as %s (%s)\n", entry.ID, entry.Digest)
			}
			return nil
		},
	}
}

func newArchiveGetCmd(a *app, open archiveOpener) *cobra.Command {
	var asJSON, asText bool

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Render an archived league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid league id %q: %w", args[0], err)
			}
			cmd.SilenceUsage = true

			format, err := a.outputFormat(asJSON, asText)
			if err != nil {
				return err
			}

			arch, err := open()
			if err != nil {
				return err
			}
			defer arch.Close()

			entry, err := arch.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), entry.League, format)
		},
	}

	getCmd.Flags().BoolVar(&asJSON, "json", false, "write JSON output")
	getCmd.Flags().BoolVar(&asText, "text", false, "write plain-text output")
	getCmd.MarkFlagsMutuallyExclusive("json", "text")
	return getCmd
}

func newArchiveListCmd(open archiveOpener) *cobra.Command {
	var format string
	var limit int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			arch, err := open()
			if err != nil {
				return err
			}
			defer arch.Close()

			entries, err := arch.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			case "table":
				return outputEntriesTable(cmd.OutOrStdout(), entries)
			default:
				return fmt.Errorf("unknown output format %q (want table or json)", format)
			}
		},
	}

	listCmd.Flags().StringVarP(&format, "format", "o", "table", "output format (table or json)")
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (0 for all)")
	return listCmd
}

func newArchiveDeleteCmd(open archiveOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a league from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid league id %q: %w", args[0], err)
			}
			cmd.SilenceUsage = true

			arch, err := open()
			if err != nil {
				return err
			}
			defer arch.Close()

			if err := arch.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func outputEntriesTable(w io.Writer, entries []archive.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No leagues archived")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tCONF\tDIV\tTEAMS\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.Source, e.Counts.Conferences, e.Counts.Divisions, e.Counts.Teams,
			e.CreatedAt.Local().Format(time.RFC3339))
	}
	return tw.Flush()
}
