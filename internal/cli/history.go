package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/urls"
)

func newHistoryCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved batches on the server",
	}
	cmd.AddCommand(
		newHistoryListCommand(env),
		newHistoryShowCommand(env),
		newHistorySaveCommand(env),
		newHistoryClearCommand(env),
	)
	return cmd
}

func newHistoryListCommand(env *Env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := env.requireAPI()
			if err != nil {
				return err
			}
			items, err := api.History(cmd.Context())
			if err != nil {
				return err
			}
			return render(env.Out, format, items, func() {
				if len(items) == 0 {
					env.println("no history")
					return
				}
				for _, it := range items {
					env.println(formatItem(it))
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json, yaml)")
	return cmd
}

func newHistoryShowCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the text a saved batch was extracted from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := env.requireAPI()
			if err != nil {
				return err
			}
			items, err := api.History(cmd.Context())
			if err != nil {
				return err
			}
			for _, it := range items {
				if it.ID == args[0] {
					env.println(it.FullText)
					return nil
				}
			}
			return fmt.Errorf("history entry %s not found", args[0])
		},
	}
}

func newHistorySaveCommand(env *Env) *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save the links of the input as a history entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := env.requireAPI()
			if err != nil {
				return err
			}
			text, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errNoURLs
			}
			list := urls.Originals(records)
			if strings.TrimSpace(text) == "" {
				text = strings.Join(list, "\n")
			}

			item, err := api.SaveHistory(cmd.Context(), list, text)
			if err != nil {
				return err
			}
			env.println(formatItem(item))
			return nil
		},
	}
	sel.bind(cmd)
	return cmd
}

func newHistoryClearCommand(env *Env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			api, err := env.requireAPI()
			if err != nil {
				return err
			}
			if err := api.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			env.println("history cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func formatItem(it domain.HistoryItem) string {
	ts := time.UnixMilli(it.Timestamp).UTC().Format(time.RFC3339)
	preview := strings.Join(it.Preview, " ")
	if more := it.URLCount - len(it.Preview); more > 0 {
		preview += fmt.Sprintf(" (+%d more)", more)
	}
	return fmt.Sprintf("%s  %s  %d links  %s", it.ID, ts, it.URLCount, preview)
}
