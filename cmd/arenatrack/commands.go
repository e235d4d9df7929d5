package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/roster"
	"github.com/verte-zerg/arenatrack/internal/stats"
	"github.com/verte-zerg/arenatrack/internal/tracker"
)

const (
	terminalWidthBackup = 80
	shareBarMaxWidth    = 60
)

var (
	rosterSearch string
	rosterRole   string
	rosterStatus string
	rosterJSON   bool

	resetYes bool
	resetAll bool
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print progress toward the milestone and per-role stats",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	res := a.loadRosterInto(ctx)
	a.tracker.Evaluate(ctx)
	snap := a.tracker.Snapshot()

	out := cmd.OutOrStdout()
	if res.Version != "" {
		note := ""
		if res.Cached {
			note = " (cached)"
		}
		if _, err := fmt.Fprintf(out, "Patch %s%s\n\n", res.Version, note); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.RenderSummary(out, snap.Report, a.tracker.Target()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCategoryTable(out, snap.Categories); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	width := min(terminalWidth(out)-2, shareBarMaxWidth)
	if _, err := fmt.Fprintln(out, stats.RenderShareBar(snap.Categories, width)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List champions and their completion",
		Args:  cobra.NoArgs,
		RunE:  runRosterCmd,
	}
	cmd.Flags().StringVar(&rosterSearch, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&rosterRole, "role", "", "role filter ("+strings.Join(model.Categories, ", ")+")")
	cmd.Flags().StringVar(&rosterStatus, "status", "", "completion filter (won or not-won)")
	cmd.Flags().BoolVar(&rosterJSON, "json", false, "print JSON records")
	return cmd
}

type rosterRecord struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	Key    string   `json:"key"`
	Won    bool     `json:"won"`
	Image  string   `json:"image"`
	Splash string   `json:"splash"`
}

func runRosterCmd(cmd *cobra.Command, _ []string) error {
	if rosterRole != "" && !slices.Contains(model.Categories, rosterRole) {
		return fmt.Errorf("unknown role %q (available: %s)", rosterRole, strings.Join(model.Categories, ", "))
	}
	if rosterStatus != model.CompletionAll && rosterStatus != model.CompletionWon && rosterStatus != model.CompletionNotWon {
		return fmt.Errorf("--status must be %q or %q", model.CompletionWon, model.CompletionNotWon)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.loadRoster(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	a.tracker.SetRoster(res.Champions)
	champions := a.tracker.Filter(model.Filter{
		Search:     rosterSearch,
		Role:       rosterRole,
		Completion: rosterStatus,
	})

	out := cmd.OutOrStdout()
	if rosterJSON {
		records := make([]rosterRecord, 0, len(champions))
		for _, c := range champions {
			records = append(records, rosterRecord{
				ID:     c.ID,
				Name:   c.Name,
				Roles:  c.Roles,
				Key:    c.Key,
				Won:    a.tracker.Completed(c.ID),
				Image:  a.client.ImageURL(res.Version, c.ID),
				Splash: a.client.SplashURL(c.ID),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	for _, c := range champions {
		marker := " "
		if a.tracker.Completed(c.ID) {
			marker = "x"
		}
		if _, err := fmt.Fprintf(out, "[%s] %s (%s)\n", marker, c.Name, strings.Join(c.Roles, ", ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <champion>...",
		Short: "Toggle the Arena win for champions by id or name",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runToggleCmd,
	}
}

func runToggleCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	res, err := a.loadRoster(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	a.tracker.SetRoster(res.Champions)

	champions := make([]model.Champion, 0, len(args))
	for _, arg := range args {
		c, err := roster.Find(res.Champions, arg)
		if err != nil {
			return err
		}
		champions = append(champions, c)
	}

	out := cmd.OutOrStdout()
	for _, c := range champions {
		up := a.tracker.Toggle(ctx, c.ID)
		state := "not won"
		if a.tracker.Completed(c.ID) {
			state = "won"
		}
		p := up.Snapshot.Progress
		if _, err := fmt.Fprintf(out, "%s: %s (%d/%d)\n", c.Name, state, p.Completed, a.tracker.Target()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := printMilestone(out, up.Milestone, a.tracker.Target()); err != nil {
			return err
		}
	}
	return nil
}

func printMilestone(w io.Writer, event tracker.MilestoneEvent, target int) error {
	var msg string
	switch event {
	case tracker.MilestoneShow:
		msg = fmt.Sprintf("Arena God! %d champions with an Arena win.", target)
	case tracker.MilestoneHide:
		msg = "Arena God milestone no longer met."
	default:
		return nil
	}
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every recorded win",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	cmd.Flags().BoolVar(&resetAll, "all", false, "also clear the milestone flag")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return errors.New("refusing to reset without --yes")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	cleared := a.tracker.Completions().Count()
	out := cmd.OutOrStdout()
	if resetAll {
		a.tracker.ClearAll(cmd.Context())
		if _, err := fmt.Fprintf(out, "Cleared %d wins and the milestone flag.\n", cleared); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	up := a.tracker.Reset(cmd.Context())
	if _, err := fmt.Fprintf(out, "Cleared %d wins.\n", cleared); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return printMilestone(out, up.Milestone, a.tracker.Target())
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a JSON backup of wins and settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	data, err := a.tracker.Export()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if len(args) == 0 || args[0] == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore wins and settings from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	up, err := a.tracker.Import(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Imported %d wins.\n", a.tracker.Completions().Count()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return printMilestone(out, up.Milestone, a.tracker.Target())
}
