package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/charview/internal/cliconfig"
	"github.com/bft-labs/charview/internal/tui"
)

func newListCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every character of the first page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.load(cmd); err != nil {
				return err
			}
			logger, closeLog, err := cliconfig.Logger(st.cfg.LogLevel, st.cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			v, err := st.newViewer(logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			v.LoadAll(ctx)
			v.Wait()
			defer v.Close()

			if text, ok := v.Error().Get(); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), text)
				return errLoadFailed
			}
			page, ok := v.Characters().Get()
			if !ok {
				return fmt.Errorf("interrupted: %w", ctx.Err())
			}

			out := cmd.OutOrStdout()
			for _, c := range page.Items {
				fmt.Fprintln(out, tui.FormatRow(c))
			}
			logger.Debug().Int("items", page.Len()).Msg("listed characters")
			return nil
		},
	}
}

func newShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the details of one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.load(cmd); err != nil {
				return err
			}
			logger, closeLog, err := cliconfig.Logger(st.cfg.LogLevel, st.cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			v, err := st.newViewer(logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			cell := v.LoadOne(ctx, args[0])
			v.Wait()
			defer v.Close()

			if text, ok := v.Error().Get(); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), text)
				return errLoadFailed
			}
			c, ok := cell.Get()
			if !ok {
				return fmt.Errorf("interrupted: %w", ctx.Err())
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.FormatDetail(c))
			return nil
		},
	}
}
