package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/urls"
)

func newExtractCommand(env *Env) *cobra.Command {
	var (
		sel    selection
		format string
	)

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "List the links found in the input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if records == nil {
				records = []urls.ParsedURL{}
			}
			return render(env.Out, format, records, func() {
				for _, r := range records {
					if r.Valid {
						env.println(r.Original)
						continue
					}
					env.println(fmt.Sprintf("%s\t(invalid)", r.Original))
				}
			})
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json, yaml)")
	return cmd
}

func newDedupeCommand(env *Env) *cobra.Command {
	return newTransformCommand(env, "dedupe", "Drop repeated links, keeping first occurrences", urls.Dedupe)
}

func newSortCommand(env *Env) *cobra.Command {
	return newTransformCommand(env, "sort", "Sort links alphabetically", urls.Sort)
}

func newTransformCommand(env *Env, name, short string, transform func([]urls.ParsedURL) string) *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   name + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			env.println(transform(records))
			return nil
		},
	}
	sel.bind(cmd)
	return cmd
}
