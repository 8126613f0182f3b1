package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Machine  string
	Limit    int
}

// HistoryOutput is the JSON payload of the history command.
type HistoryOutput struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with "ntm run --db", oldest first.

The most recent --limit runs are shown. Use --machine to restrict the list
to one machine name.

Examples:
  ntm history --db ./ntm.db
  ntm history --db ./ntm.db --machine even-ones --limit 5
  ntm history --db ./ntm.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Machine, "machine", "", "only list runs of this machine")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")

	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Opening would create an empty database
	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(ErrCodeDatabase, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := st.ReadRuns(ctx, opts.Machine, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}
	formatter.VerboseLog("Read %d run(s) from %s", len(runs), opts.Database)

	if formatter.Format == "json" {
		return formatter.Success(HistoryOutput{Runs: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	fmt.Fprint(formatter.Writer, renderRuns(runs))
	return nil
}

// renderRuns lays runs out as aligned columns under a bold header.
func renderRuns(runs []store.Run) string {
	rows := [][]string{{"SEQ", "MACHINE", "STRATEGY", "INPUT", "RESULT", "STEPS", "EXPLORED"}}
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.Seq, 10),
			r.Machine,
			r.Strategy,
			strconv.Quote(r.Input),
			verdict(r.Accepted),
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.Explored),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := lipgloss.NewStyle()
			if n == 0 {
				style = headerStyle
			}
			if i < len(row)-1 {
				style = style.Width(widths[i] + 2)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteByte('\n')
	}
	return b.String()
}
