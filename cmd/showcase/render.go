package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/showcase/internal/mount"
	"github.com/vango-dev/showcase/pkg/router"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <path>",
		Short: "Render the view of a location",
		Args:  cobra.ExactArgs(1),
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			route, err := r.Resolve(args[0])
			if err != nil {
				return err
			}
			view, err := r.Load(ctx, route)
			if err != nil {
				return err
			}
			return view.Render(cmd.OutOrStdout())
		}),
	}
}

func browseCmd(opts *globalOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the showcase interactively",
		Long: `Start an interactive session. Each navigation renders the new view.

Type 'help' in the session for the list of commands.

Examples:
  showcase browse
  showcase browse --at /ui/card --base /ui`,
		Args: cobra.NoArgs,
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			var hopts []router.HistoryOption
			if at != "" {
				hopts = append(hopts, router.WithLocation(at))
			}
			r, logger, err := opts.setup(cmd, hopts...)
			if err != nil {
				return err
			}
			defer r.Close()
			if at != "" {
				if _, ok := r.History().Parse(at); !ok {
					return fmt.Errorf("%w: --at %q is outside base %q", router.ErrInvalidLocation, at, r.History().Base())
				}
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			prompt := ""
			if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
				prompt = "showcase> "
			}

			m := mount.New(r, cmd.OutOrStdout(), mount.WithLogger(logger), mount.WithPrompt(prompt))
			err = m.Run(ctx, cmd.InOrStdin())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}),
	}

	cmd.Flags().StringVar(&at, "at", "", "Start at this href instead of the base root")

	return cmd
}
