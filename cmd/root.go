package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"wifiview/config"
	"wifiview/export"
	"wifiview/i18n"
	"wifiview/logging"
	"wifiview/profile"
	"wifiview/store"
	"wifiview/tui"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	version    string
	configPath string
	cfg        config.Config
	logCloser  io.Closer

	// isTerminal decides between the TUI and plain output.
	isTerminal func() bool
}

func newRootCmd(version string) *cobra.Command {
	a := &app{
		version:    version,
		isTerminal: func() bool { return term.IsTerminal(os.Stdout.Fd()) },
	}

	root := &cobra.Command{
		Use:           "wifiview",
		Short:         "View saved Wi-Fi networks and their passwords",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.isTerminal() {
				return a.runList(cmd, queryFlags{})
			}
			return a.runTUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to wifiview.yaml")
	pf.String("source", "fixture", "profile source: fixture, file or nmcli")
	pf.String("file", "", "profile file for --source file (YAML or JSON)")
	pf.String("lang", "en", fmt.Sprintf("interface language %v", i18n.Available()))
	pf.String("log-file", "wifiview-debug.log", "debug log file (empty disables logging)")
	pf.Bool("debug", false, "enable debug logging")

	root.AddCommand(newListCmd(a), newExportCmd(a), newConfigCmd(a))
	return root
}

// skipConfigLoad marks commands that must run without an existing config
// file.
const skipConfigLoad = "skip-config-load"

func (a *app) setup(cmd *cobra.Command) error {
	if _, skip := cmd.Annotations[skipConfigLoad]; skip {
		a.cfg = config.Default()
		i18n.Init(a.cfg.Language)
		return nil
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	closer, err := logging.Setup(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create log file: %v\n", err)
	} else {
		a.logCloser = closer
	}
	i18n.Init(cfg.Language)
	logging.Debugf("config: source=%s lang=%s export.dir=%s", cfg.Source, cfg.Language, cfg.Export.Dir)
	return nil
}

func (a *app) teardown() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

func (a *app) newStore() (*store.Store, error) {
	src, err := store.Open(a.cfg.Source, a.cfg.File)
	if err != nil {
		return nil, err
	}
	return store.New(src, a.cfg.Timing.LoadDelay), nil
}

func (a *app) exporter() export.Exporter {
	return export.Exporter{Dir: a.cfg.Export.Dir, BaseName: a.cfg.Export.BaseName}
}

func (a *app) runTUI(ctx context.Context) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := tui.New(tui.Options{
		Context:     ctx,
		Store:       st,
		Exporter:    a.exporter(),
		Clipboard:   tui.SystemClipboard{},
		ExportDelay: a.cfg.Timing.ExportDelay,
		NotifyAfter: a.cfg.Timing.Notification,
		Version:     a.version,
	})
	logging.Infof("starting TUI (source %s)", st.SourceName())
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

// loadVisible loads the store once and applies q.
func (a *app) loadVisible(cmd *cobra.Command, q profile.Query) (store.Snapshot, []profile.Record, error) {
	st, err := a.newStore()
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := st.Load(ctx)
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	for _, w := range snap.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", w)
	}
	return snap, profile.Apply(snap.Records, q, profile.NewCollator(i18n.Tag())), nil
}
