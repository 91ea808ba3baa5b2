package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bft-labs/charview/internal/cliconfig"
	"github.com/bft-labs/charview/internal/configwatch"
	"github.com/bft-labs/charview/internal/tui"
	"github.com/bft-labs/charview/pkg/charview"
	"github.com/bft-labs/charview/pkg/log"
)

func newBrowseCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive character browser (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, st)
		},
	}
}

func runBrowse(cmd *cobra.Command, st *cliState) error {
	if err := st.load(cmd); err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to the log file or nowhere.
	logger, closeLog, err := cliconfig.InteractiveLogger(st.cfg.LogLevel, st.cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	v, err := st.newViewer(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := v.Close(); err != nil {
			logger.Warn().Err(err).Msg("close viewer")
		}
	}()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	app := tui.New(ctx, v)
	defer app.Close()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if st.cfg.Watch && st.cfgPath != "" {
		w := configwatch.New(st.cfgPath, st.onConfigChange(v, p, logger),
			log.NewZerologAdapterWithLogger(logger), configwatch.DefaultConfig())
		if err := w.Start(ctx); err != nil {
			logger.Warn().Err(err).Msg("config watcher disabled")
		} else {
			defer w.Stop()
		}
	}

	logger.Info().Str("api_url", st.cfg.APIURL).Msg("browser started")

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

// onConfigChange reapplies a reloaded config file with the usual precedence
// and repoints the viewer when the API URL changed.
func (st *cliState) onConfigChange(v *charview.Viewer, p *tea.Program, logger zerolog.Logger) func(cliconfig.FileConfig) {
	return func(fc cliconfig.FileConfig) {
		next := st.cfg
		if err := cliconfig.ApplyFileConfig(&next, fc, st.changed); err != nil {
			logger.Warn().Err(err).Msg("ignoring reloaded config")
			return
		}
		if err := cliconfig.ApplyEnvConfig(&next, st.changed); err != nil {
			logger.Warn().Err(err).Msg("ignoring reloaded config")
			return
		}
		if err := next.Validate(); err != nil {
			logger.Warn().Err(err).Msg("ignoring reloaded config")
			return
		}
		if next.APIURL == v.APIURL() {
			return
		}
		if err := v.SetAPIURL(next.APIURL); err != nil {
			logger.Warn().Err(err).Msg("ignoring reloaded config")
			return
		}
		p.Send(tui.ReloadMsg{Reason: "API URL changed to " + next.APIURL})
	}
}
