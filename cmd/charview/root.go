package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/charview/internal/cliconfig"
	"github.com/bft-labs/charview/pkg/charview"
	"github.com/bft-labs/charview/pkg/log"
)

const longHelp = `Browse characters from the Dragon Ball API.

Without a subcommand charview opens an interactive browser. The list and show
subcommands print to stdout and exit non-zero when the API call fails.

Configuration is read from flags, CHARVIEW_* environment variables and
$HOME/.charview/config.toml, in that order of precedence.`

var exampleUsage = strings.TrimSpace(`
  charview
  charview list
  charview show 1
  CHARVIEW_API_URL=http://localhost:8080/api charview list
  charview --config ./charview.toml --watch browse
`)

// errLoadFailed is returned when the error cell was set by a load.
var errLoadFailed = errors.New("load failed")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// cliState is shared by the root command and its subcommands.
type cliState struct {
	cfg     cliconfig.Config
	cfgPath string
	changed map[string]bool
}

func newRootCmd() *cobra.Command {
	st := &cliState{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "charview",
		Short:         "Browse characters from the Dragon Ball API",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, st)
		},
	}

	root.PersistentFlags().StringVar(&st.cfgPath, "config", "", "path to config file (default: $HOME/.charview/config.toml)")
	root.PersistentFlags().StringVar(&st.cfg.APIURL, "api-url", st.cfg.APIURL, "character API base URL")
	root.PersistentFlags().DurationVar(&st.cfg.HTTPTimeout, "timeout", st.cfg.HTTPTimeout, "HTTP timeout")
	root.PersistentFlags().DurationVar(&st.cfg.ShutdownTimeout, "shutdown-timeout", st.cfg.ShutdownTimeout, "how long to wait for in-flight requests on exit")
	root.PersistentFlags().StringVar(&st.cfg.LogLevel, "log-level", st.cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&st.cfg.LogFile, "log-file", st.cfg.LogFile, "append logs to this file instead of stderr")
	root.PersistentFlags().BoolVar(&st.cfg.Watch, "watch", st.cfg.Watch, "reload the config file when it changes (browse only)")

	root.AddCommand(
		newBrowseCmd(st),
		newListCmd(st),
		newShowCmd(st),
	)

	return root
}

// load resolves the configuration: flags, then CHARVIEW_* variables, then the
// config file, then defaults.
func (st *cliState) load(cmd *cobra.Command) error {
	cfgFile := st.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	st.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { st.changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&st.cfg, fc, st.changed); err != nil {
			return err
		}
		st.cfgPath = cfgFile
	} else if st.cfgPath != "" {
		return fmt.Errorf("config file %s not found", st.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&st.cfg, st.changed); err != nil {
		return err
	}

	return st.cfg.Validate()
}

// newViewer builds a viewer logging through logger.
func (st *cliState) newViewer(logger zerolog.Logger) (*charview.Viewer, error) {
	v, err := charview.New(charview.Config{
		APIURL:          st.cfg.APIURL,
		HTTPTimeout:     st.cfg.HTTPTimeout,
		ShutdownTimeout: st.cfg.ShutdownTimeout,
		UserAgent:       "charview/" + getVersion(),
	}, charview.WithLogger(log.NewZerologAdapterWithLogger(logger)))
	if err != nil {
		return nil, fmt.Errorf("create viewer: %w", err)
	}
	return v, nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
