package main

import (
	"github.com/TFMV/scrub/api"
	"github.com/spf13/cobra"
)

// newServeCommand creates the serve command.
func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cleaning operations over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return api.NewServer().Start(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "3000", "Port to listen on")

	return cmd
}
