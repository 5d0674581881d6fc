package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Every subcommand connects to the
// server before it runs.
func (a *App) NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "catsocial",
		Short:         "Command-line client for the catsocial service",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.config.ServerEndpointAddr, "addr", "a", a.config.ServerEndpointAddr, "address and port of the server")
	flags.StringVar(&a.config.TokenFile, "token-file", a.config.TokenFile, "file keeping the session token")
	flags.DurationVar(&a.config.RequestTimeout, "timeout", a.config.RequestTimeout, "per-request timeout")
	flags.BoolVar(&a.jsonOutput, "json", false, "print raw JSON responses")
	// read by config.LoadConfig before cobra runs
	flags.StringVarP(&configFile, "config", "c", "", "path to JSON config file")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.profileCommand(),
		a.followCommand("follow"),
		a.followCommand("unfollow"),
		a.followListCommand("followers"),
		a.followListCommand("following"),
		a.postCommand(),
		a.feedCommand(),
		a.likeCommand("like"),
		a.likeCommand("unlike"),
	)
	return root
}
