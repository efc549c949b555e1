package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the server and its storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := env.requireAPI()
			if err != nil {
				return err
			}
			h, err := api.Health(cmd.Context())
			if err != nil {
				return err
			}
			store := "not configured"
			if h.DBConfigured {
				store = "configured"
			}
			_, _ = fmt.Fprintf(env.Out, "ok: %t, storage %s\n", h.OK, store)
			return nil
		},
	}
}
