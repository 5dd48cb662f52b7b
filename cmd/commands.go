package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"promptengine/pkg/config"
	"promptengine/pkg/diff"
	"promptengine/pkg/mcptools"
	"promptengine/pkg/modes"
	"promptengine/pkg/quality"
	"promptengine/pkg/store"
	"promptengine/pkg/utils"
)

// readText joins args, or reads stdin when the only arg is "-" or none is given.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func newScoreCmd() *cobra.Command {
	var batch string

	cmd := &cobra.Command{
		Use:         "score [text|-]",
		Annotations: offline(),
		Short:       "Print the quality report of a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch != "" {
				prompts, err := utils.Load[[]string](batch)
				if err != nil {
					return fmt.Errorf("reading batch %s: %w", batch, err)
				}
				reports := make([]quality.Report, len(prompts))
				for i, p := range prompts {
					reports[i] = quality.Score(p)
				}
				fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJSON(reports))
				return nil
			}

			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJSON(quality.Score(text)))
			return nil
		},
	}
	cmd.Flags().StringVar(&batch, "batch", "", "JSON file holding an array of prompts to score")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "analyze [text|-]",
		Annotations: offline(),
		Short:       "Print the analysis of a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJSON(quality.Analyze(text)))
			return nil
		},
	}
}

func newDiffCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "diff OLD_FILE NEW_FILE",
		Annotations: offline(),
		Short:       "Compare two prompt files word by word and dimension by dimension",
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldText, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			newText, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			d := diff.Prompts(string(oldText), string(newText))
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJSON(d))
				return nil
			}
			d.Print(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diff as JSON")
	return cmd
}

func newModesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the optimization modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue, err := modes.Load(cfg.ModesFile)
			if err != nil {
				return err
			}
			if cfg.ModelOverride != "" {
				catalogue = catalogue.WithModelOverride(cfg.ModelOverride)
			}
			out := cmd.OutOrStdout()
			for _, m := range catalogue.All() {
				fmt.Fprintf(out, "%-20s %-22s %s\n", m.Name, m.Model, m.Title)
			}
			return nil
		},
	}
}

// Snapshot is the JSON document written by history export.
type Snapshot struct {
	ExportedAt time.Time            `json:"exported_at"`
	Stats      *store.Stats         `json:"stats"`
	History    []store.HistoryEntry `json:"history"`
	Prompts    []store.Prompt       `json:"prompts"`
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	history := &cobra.Command{
		Use:   "history",
		Short: "Work with stored optimization history",
	}

	var limit int
	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Write recent history, prompts and stats to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.New(cfg.DataDir)
			if err != nil {
				return err
			}
			defer st.Close()

			snap := Snapshot{ExportedAt: time.Now().UTC()}
			if snap.Stats, err = st.Stats(); err != nil {
				return err
			}
			if snap.History, err = st.RecentHistory(store.MaxHistory); err != nil {
				return err
			}
			if snap.Prompts, err = st.ListPrompts(limit, 0); err != nil {
				return err
			}
			if err := utils.Save(args[0], snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d history entries and %d prompts to %s\n",
				len(snap.History), len(snap.Prompts), args[0])
			return nil
		},
	}
	export.Flags().IntVar(&limit, "prompts", 100, "maximum number of prompts to export")

	history.AddCommand(export)
	return history
}

func newMCPCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the scoring tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout belongs to the protocol
			cmd.SetOut(os.Stderr)
			opt, err := newOptimizer(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			return mcptools.Serve(version, opt)
		},
	}
}
