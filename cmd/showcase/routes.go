package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/internal/mount"
	"github.com/vango-dev/showcase/pkg/router"
)

func routesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			h := r.History()
			data := pterm.TableData{{"Name", "Path", "Href", "Title"}}
			for _, d := range r.Routes() {
				data = append(data, []string{d.Name, d.Path, h.Href(d.Path), d.Meta["title"]})
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}),
	}
}

func resolveCmd(opts *globalOptions) *cobra.Command {
	var href bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a location to its route",
		Long: `Resolve an app-relative location, or with --href a link target that
includes the base, and print the matching route.

Examples:
  showcase resolve /card
  showcase resolve --href /ui/#/checkbox --history hash --base /ui`,
		Args: cobra.ExactArgs(1),
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			var route *router.Route
			if href {
				route, err = r.ResolveHref(args[0])
			} else {
				route, err = r.Resolve(args[0])
			}
			if err != nil {
				return err
			}
			printRoute(cmd, route)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&href, "href", false, "Treat the argument as a base-prefixed href")

	return cmd
}

func hrefCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "href <name> [key=value...]",
		Short: "Print the link target of a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			params, err := mount.ParseParams(args[1:])
			if err != nil {
				return err
			}
			r, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			route, err := r.ResolveLocation(router.Location{Name: args[0], Params: params})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), route.Href)
			return nil
		}),
	}
}

func printRoute(cmd *cobra.Command, route *router.Route) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:     %s\n", route.Name)
	fmt.Fprintf(out, "Pattern:  %s\n", route.Pattern)
	fmt.Fprintf(out, "Path:     %s\n", route.FullPath)
	fmt.Fprintf(out, "Href:     %s\n", route.Href)
	if len(route.Params) > 0 {
		keys := make([]string, 0, len(route.Params))
		for k := range route.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + route.Params[k]
		}
		fmt.Fprintf(out, "Params:   %s\n", strings.Join(pairs, " "))
	}
}
