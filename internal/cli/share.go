package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/sharecodec"
	"github.com/MrSnakeDoc/linkbatch/internal/sharelink"
	"github.com/MrSnakeDoc/linkbatch/internal/urls"
)

func newEncodeCommand(env *Env) *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Pack the links into a self-contained share token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errNoURLs
			}
			token, err := sharecodec.Encode(urls.Originals(records))
			if err != nil {
				return err
			}
			env.println(token)
			return nil
		},
	}
	sel.bind(cmd)
	return cmd
}

func newDecodeCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Print the links carried by a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := sharecodec.Decode(strings.TrimSpace(args[0]))
			if len(list) == 0 {
				return errNoURLs
			}
			env.println(list...)
			return nil
		},
	}
}

func newShareCommand(env *Env) *cobra.Command {
	var (
		sel     selection
		base    string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Create a share link for the links",
		Long: `share stores the links on the server and prints a ?share=<id> link.
When the server cannot be reached, or with --offline, the link carries the
whole list as a compressed token instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errNoURLs
			}
			list := urls.Originals(records)

			if base == "" {
				base = env.Config.APIBase + "/"
			}

			value := ""
			if !offline && env.API != nil {
				id, err := env.API.CreateShare(cmd.Context(), list)
				switch {
				case err != nil:
					env.Logger.Warn("share creation failed, falling back to a token link", logger.Error(err))
				case id != "":
					value = id
				}
			}
			if value == "" {
				if value, err = sharecodec.Encode(list); err != nil {
					return err
				}
			}

			link, err := sharelink.Build(base, value)
			if err != nil {
				return err
			}
			env.println(link)
			return nil
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVar(&base, "base", "", "Page the link points at (default LINKBATCH_API_BASE)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the server and embed the links in the link itself")
	return cmd
}

func newLoadCommand(env *Env) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "load <link|id|token>",
		Short: "Print the links behind a share link, id or token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolver sharelink.Resolver
			if !offline && env.API != nil {
				resolver = env.API
			}
			loader := sharelink.NewLoader(resolver, env.Logger)

			value := strings.TrimSpace(args[0])
			var list []string
			if strings.Contains(value, "://") {
				list = loader.LoadLink(cmd.Context(), value)
			} else {
				list = loader.Load(cmd.Context(), value)
			}
			if len(list) == 0 {
				return errNoURLs
			}
			env.println(list...)
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Only decode tokens locally")
	return cmd
}
