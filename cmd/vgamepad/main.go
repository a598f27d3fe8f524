// Package main starts the vgamepad server.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	debug     bool
	staticDir string
}

// main is the entrypoint for the vgamepad CLI.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logFatal(err)
	}
}

// newRootCmd builds the command tree; the root command serves by default.
func newRootCmd() *cobra.Command {
	opts := &serveOptions{}
	rootCmd := &cobra.Command{
		Use:           "vgamepad",
		Short:         "virtual joystick controls served to browsers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	addServeFlags(rootCmd.Flags(), opts)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the pad UI and websocket endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	addServeFlags(serveCmd.Flags(), opts)

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "inspect or create the layout file",
	}
	checkCmd := &cobra.Command{
		Use:   "check [path]",
		Short: "validate a layout file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutCheck(cmd.OutOrStdout(), args)
		},
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default layout file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutInit(cmd.OutOrStdout(), args, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	layoutCmd.AddCommand(checkCmd, initCmd)

	rootCmd.AddCommand(serveCmd, layoutCmd)
	return rootCmd
}

// addServeFlags registers the serve flags on fs.
func addServeFlags(fs *pflag.FlagSet, opts *serveOptions) {
	fs.BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	fs.StringVar(&opts.staticDir, "static", "", "serve UI assets from this directory instead of the embedded copy")
}
