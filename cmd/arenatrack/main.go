// Package main provides the CLI entrypoint for arenatrack.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/arenatrack/internal/config"
	"github.com/verte-zerg/arenatrack/internal/ddragon"
	applog "github.com/verte-zerg/arenatrack/internal/log"
	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/store"
	"github.com/verte-zerg/arenatrack/internal/tracker"
	"github.com/verte-zerg/arenatrack/internal/tui"
)

var (
	flagTarget     int
	flagVersion    string
	flagLocale     string
	flagDDragonURL string
	flagGridSize   string
	flagVerbose    bool
	flagQuiet      bool

	// Overridden in tests.
	configPath = config.DefaultConfigPath
	dbPath     = config.DefaultDBPath
	logPath    = config.DefaultLogPath
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arenatrack",
		Short:         "Track Arena wins toward the Arena God challenge",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			applog.Setup(flagVerbose, flagQuiet)
		},
		RunE: runTUICmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagTarget, "target", model.DefaultTarget, "distinct champion wins needed for the milestone")
	flags.StringVar(&flagVersion, "version", "", "Data Dragon version (default: latest)")
	flags.StringVar(&flagLocale, "locale", ddragon.DefaultLocale, "Data Dragon locale for champion names")
	flags.StringVar(&flagDDragonURL, "ddragon-url", ddragon.DefaultBaseURL, "Data Dragon base URL")
	flags.StringVar(&flagGridSize, "grid-size", "", "champion grid density (small or medium)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "only log warnings and errors")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newToggleCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

// app holds the wired dependencies for one command run.
type app struct {
	store    *store.Store
	tracker  *tracker.Tracker
	client   *ddragon.Client
	provider *ddragon.CachedProvider
}

// openApp merges the config file into the flags, opens the database and
// restores tracker state.
func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "target", &flagTarget, fileCfg.Tracker.Target)
	applyStringConfig(cmd, "version", &flagVersion, fileCfg.Tracker.Version)
	applyStringConfig(cmd, "locale", &flagLocale, fileCfg.Tracker.Locale)
	applyStringConfig(cmd, "ddragon-url", &flagDDragonURL, fileCfg.Tracker.DDragonURL)
	applyStringConfig(cmd, "grid-size", &flagGridSize, fileCfg.Tracker.GridSize)

	if err := validateFlags(); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tr := tracker.New(ctx, st, flagTarget)
	if flagGridSize != "" {
		tr.SetGridSize(ctx, flagGridSize)
	}
	client := ddragon.NewClient(flagDDragonURL, flagLocale)
	return &app{
		store:    st,
		tracker:  tr,
		client:   client,
		provider: ddragon.NewCachedProvider(client, st),
	}, nil
}

func (a *app) close() {
	if cerr := a.store.Close(); cerr != nil {
		slog.Error("failed to close db", "err", cerr)
	}
}

// loadRoster resolves the version and loads the roster, falling back to the cache.
func (a *app) loadRoster(ctx context.Context) (ddragon.Result, error) {
	version := a.client.ResolveVersion(ctx, flagVersion)
	res, err := a.provider.Load(ctx, version)
	if err != nil {
		return ddragon.Result{}, err
	}
	slog.Debug("roster loaded", "version", res.Version, "count", len(res.Champions), "cached", res.Cached)
	return res, nil
}

// loadRosterInto loads the roster into the tracker. A failed load leaves the
// roster empty so every statistic reads zero.
func (a *app) loadRosterInto(ctx context.Context) ddragon.Result {
	res, err := a.loadRoster(ctx)
	if err != nil {
		slog.Warn("champion roster unavailable", "err", err)
		return ddragon.Result{}
	}
	a.tracker.SetRoster(res.Champions)
	return res
}

func validateFlags() error {
	if flagTarget <= 0 {
		return fmt.Errorf("--target must be > 0")
	}
	if flagGridSize != "" && flagGridSize != tracker.GridSmall && flagGridSize != tracker.GridMedium {
		return fmt.Errorf("--grid-size must be %q or %q", tracker.GridSmall, tracker.GridMedium)
	}
	return nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	path := logPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	applog.SetupWriter(logFile, flagVerbose, flagQuiet)

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	program := tea.NewProgram(tui.NewModel(a.tracker, a.loadRoster), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config template unless a file already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# arenatrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[tracker]
# target = %d                # Distinct champion wins for the Arena God milestone
# version = "%s"         # Data Dragon version (default: latest)
# locale = %q             # Champion name locale
# ddragon-url = %q
# grid-size = %q          # Champion grid density: small or medium
`,
		model.DefaultTarget,
		model.DefaultVersion,
		ddragon.DefaultLocale,
		ddragon.DefaultBaseURL,
		tracker.GridMedium,
	)
}
