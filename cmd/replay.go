package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matheuskafuri/readq/internal/triage"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [file|-]",
	Short: "Apply a script of actions to the queue and print the result",
	Long: `Read one action per line as "<kind> <article-id>" and dispatch each against
the seed queue in order. Kinds are favorite, archive, trash and toggleExpand.
Blank lines and lines starting with # are ignored. Reads stdin when no file
is given or the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()
			in = f
		}

		actions, err := parseActions(in)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		res, err := s.load(cmd.Context(), flagRefresh)
		if err != nil {
			return fmt.Errorf("loading queue: %w", err)
		}

		router := triage.NewRouter(triage.NewStore(res.Articles), s.logger)
		printSnapshot(cmd.OutOrStdout(), router.DispatchAll(actions))
		return nil
	},
}

// parseActions reads "<kind> <id>" lines. Kinds are not checked here; the
// router ignores unknown ones.
func parseActions(r io.Reader) ([]triage.Action, error) {
	var actions []triage.Action
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"<kind> <article-id>\", got %q", line, text)
		}
		actions = append(actions, triage.Action{Kind: triage.Kind(fields[0]), ArticleID: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return actions, nil
}

func printSnapshot(w io.Writer, snap triage.Snapshot) {
	section := func(name string, items []triage.Article) {
		fmt.Fprintf(w, "%s (%d)\n", name, len(items))
		for _, a := range items {
			mark := " "
			if snap.IsFavorite(a.ID) {
				mark = "♥"
			}
			suffix := ""
			if a.Expanded {
				suffix = " [expanded]"
			}
			fmt.Fprintf(w, "  %s %-10s %s%s\n", mark, a.ID, a.Title, suffix)
		}
	}
	section("queue", snap.Queue)
	section("archive", snap.Archived)
	section("trash", snap.Trashed)
	fmt.Fprintf(w, "favorites=%d archived=%d trashed=%d\n",
		snap.Stats.NumOfFavorites, snap.Stats.NumOfArchived, snap.Stats.NumOfTrashed)
}
