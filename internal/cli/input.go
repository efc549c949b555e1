package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/urls"
)

// selection holds the flags shared by every command working on a subset of
// the extracted links.
type selection struct {
	ids    string
	picks  string
	onlyOK bool
}

func (s *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.ids, "ids", "positional", "Record id scheme (positional, content)")
	cmd.Flags().StringVar(&s.picks, "select", "", "Comma separated 1-based positions to keep (default all)")
	cmd.Flags().BoolVar(&s.onlyOK, "valid-only", false, "Drop links that do not parse as absolute URLs")
}

// load reads the input and returns it with the selected records.
func (s *selection) load(env *Env, args []string) (string, []urls.ParsedURL, error) {
	text, err := readInput(env, args)
	if err != nil {
		return "", nil, err
	}

	policy, err := urls.PolicyByName(s.ids)
	if err != nil {
		return "", nil, err
	}
	session := urls.NewSession(policy)
	session.SetText(text)

	if s.picks != "" {
		indices, err := parsePicks(s.picks)
		if err != nil {
			return "", nil, err
		}
		session.SelectIndices(indices...)
	}

	selected := session.Selected()
	if s.onlyOK {
		kept := selected[:0]
		for _, r := range selected {
			if r.Valid {
				kept = append(kept, r)
			}
		}
		selected = kept
	}
	return text, selected, nil
}

// parsePicks turns "1,3-5" into zero-based indices.
func parsePicks(value string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || from < 1 {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		to := from
		if isRange {
			to, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || to < from {
				return nil, fmt.Errorf("invalid selection %q", part)
			}
		}
		for i := from; i <= to; i++ {
			out = append(out, i-1)
		}
	}
	return out, nil
}
