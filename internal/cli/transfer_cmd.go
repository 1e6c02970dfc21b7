package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/transfer"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all plans as JSON or YAML",
		Long: `Export all plans. Without --out the document is written to stdout.
The format defaults to the --out file extension, else JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := format
			if name == "" && out != "" {
				name = transfer.FormatFromPath(out)
			}
			name, err := transfer.ParseFormat(name)
			if err != nil {
				return err
			}

			plans, err := app.Plans.List(cmd.Context())
			if err != nil {
				return err
			}

			export := func(w io.Writer) error {
				if err := transfer.Export(w, plans, name); err != nil {
					return fmt.Errorf("exporting plans: %w", err)
				}
				return nil
			}
			if out == "" {
				return export(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := writeAndClose(f, export); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d plan(s) to %s\n",
				formatter.StyleGreen.Render("✔"), len(plans), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var format string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import plans from a JSON or YAML export",
		Long: `Import plans from a file. By default plans are merged by ID: matching
plans are replaced and new ones appended. --replace discards the current
collection first. Imported plans are not given new reminders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			name := format
			if name == "" {
				name = transfer.FormatFromPath(path)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			incoming, err := transfer.Import(f, name)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			res, err := app.Plans.Import(cmd.Context(), incoming, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d plan(s): %d added, %d replaced, %d total\n",
				formatter.StyleGreen.Render("✔"), len(incoming), res.Added, res.Replaced, res.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from the file extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace all plans instead of merging")
	return cmd
}

// writeAndClose runs write against wc and always closes it. A close error
// is reported, since a failed flush means the file is incomplete.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	werr := write(wc)
	cerr := wc.Close()
	return errors.Join(werr, cerr)
}
