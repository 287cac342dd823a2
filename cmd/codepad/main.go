package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"codepad/cmd/codepad/playground"
	"codepad/internal/config"
	"codepad/internal/logging"
	"codepad/internal/reference"
	"codepad/internal/store"
	"codepad/internal/streak"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
)

// rootCmd launches the playground TUI.
var rootCmd = &cobra.Command{
	Use:   "codepad",
	Short: "codepad - a coding playground that rewards momentum",
	Long: `codepad is a terminal coding playground. Keep typing and your streak
climbs; stop for ten seconds and it resets. Every tenth keystroke earns an
exclamation, your work autosaves as you go, and a finish command renders
what you wrote as markdown.

Run without arguments to start the playground.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}
			workspace = wd
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		debug := cfg.Logging.DebugMode || verbose
		if err := logging.Initialize(workspace, debug, level); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlayground()
	},
}

// exportCmd prints the saved snippet to stdout or a file.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the saved snippet",
	Long: `Writes the last saved editor content to the given file, or to stdout
when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

// resetCmd clears all persisted playground state.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved snippet and display name",
	RunE:  runReset,
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the codepad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("codepad", config.DefaultConfig().Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.codepad/config.yaml)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(workspace, ".codepad", "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolvePath anchors a config-relative path at the workspace.
func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

// runPlayground wires the session together and runs the TUI until it quits.
func runPlayground() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.Get(logging.CategoryBoot)
	log.Infow("starting playground", "workspace", workspace, "version", cfg.Version)

	st, err := store.NewLocalStore(resolvePath(cfg.Storage.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	tracker := streak.NewTracker(cfg.GetInactivityWindow(), streak.DefaultSampler(time.Now().UnixNano()))
	tracker.SetMilestoneInterval(cfg.GetMilestoneInterval())
	defer tracker.Stop()

	refs, err := reference.NewWatcher(resolvePath(cfg.Reference.Path), cfg.GetReloadThrottle())
	if err != nil {
		return fmt.Errorf("failed to open reference watcher: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := refs.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch reference file: %w", err)
	}
	defer refs.Stop()

	model := playground.New(cfg, st, tracker, refs)
	p := tea.NewProgram(model, tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("playground exited: %w", err)
	}
	log.Infow("playground stopped")
	return nil
}

// runExport writes the saved snippet out. Missing content is an error so
// scripts can tell "nothing saved" apart from an empty snippet.
func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.NewLocalStore(resolvePath(cfg.Storage.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	content, ok, err := st.Get(store.KeyContent)
	if err != nil {
		return fmt.Errorf("failed to read snippet: %w", err)
	}
	if !ok {
		return fmt.Errorf("no saved snippet; run codepad first")
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Printf("Exported %d bytes to %s\n", len(content), args[0])
		return nil
	}

	fmt.Print(content)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.NewLocalStore(resolvePath(cfg.Storage.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	fmt.Println("Cleared saved snippet and display name.")
	return nil
}
