package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/distill/pkg/content"
	"github.com/jmylchreest/distill/pkg/processor"
	"github.com/jmylchreest/distill/pkg/processor/builtin"
	"github.com/jmylchreest/distill/pkg/processor/markup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Run the markup cleaner on one input and report what it removed",
	Long: `Run the markup cleaner alone and print cleaning statistics to stderr and
the cleaned markup to stdout.

With --compare, every built-in stage runs on its own with default options
and a size comparison table is printed instead.

Examples:
  distill clean article.html
  distill clean --preset text-only --stats-only article.html
  distill clean --remove "nav,footer" --preserve "p,h1,blockquote" article.html
  distill clean --compare article.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.String("preset", "default", "cleaner preset: default, text-only")
	flags.String("remove", "", "comma-separated element names to remove (added to the preset)")
	flags.String("preserve", "", "comma-separated element names to keep (replaces the preset list)")
	flags.Bool("stats-only", false, "only show stats, don't output content")
	flags.Bool("json", false, "print stats as JSON on stdout")
	flags.Bool("compare", false, "compare every built-in stage on the input")
}

func runClean(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	items, err := readInputs(cmd.InOrStdin(), []string{path}, 64<<20, content.ProcessingOptions{})
	if err != nil {
		return err
	}
	input, source := items[0].Content, displayName(items[0].ID)

	if compare, _ := cmd.Flags().GetBool("compare"); compare {
		return compareStages(cmd.OutOrStdout(), input, source)
	}

	cfg, err := cleanConfig(cmd)
	if err != nil {
		return err
	}
	result := markup.New(cfg).ProcessWithStats(input)
	if result.Err != nil {
		return result.Err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	statsOnly, _ := cmd.Flags().GetBool("stats-only")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Source    string        `json:"source"`
			Stats     *markup.Stats `json:"stats"`
			Reduction float64       `json:"reductionPercent"`
		}{source, result.Stats, result.Stats.ReductionPercent()})
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Source: %s\n%s", source, result.Stats)
	if !statsOnly {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Content)
	}
	return err
}

func cleanConfig(cmd *cobra.Command) (*markup.Config, error) {
	var cfg *markup.Config
	switch preset, _ := cmd.Flags().GetString("preset"); preset {
	case "default", "":
		cfg = markup.DefaultConfig()
	case "text-only":
		cfg = markup.TextOnlyConfig()
	default:
		return nil, fmt.Errorf("unknown preset: %s (use default or text-only)", preset)
	}

	if remove, _ := cmd.Flags().GetString("remove"); remove != "" {
		cfg.RemoveElements = append(cfg.RemoveElements, splitList(remove)...)
	}
	if preserve, _ := cmd.Flags().GetString("preserve"); preserve != "" {
		cfg.PreserveElements = splitList(preserve)
	}
	return cfg, nil
}

// compareStages runs each built-in stage alone and tabulates the results.
func compareStages(w io.Writer, input, source string) error {
	registry := builtin.NewRegistry()

	fmt.Fprintf(w, "Input: %s (%s)\n\n", source, humanize.Bytes(uint64(len(input))))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Stage\tOutput\tReduce%\tTime\t")
	for _, name := range registry.Names() {
		p, err := registry.New(processor.StageConfig{Name: name, Enabled: true})
		if err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", name, err)
			continue
		}

		start := time.Now()
		out, err := p.Process(input)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\n", name, firstLine(err.Error()))
			continue
		}

		reduction := 0.0
		if len(input) > 0 {
			reduction = float64(len(input)-len(out)) / float64(len(input)) * 100
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t\n", name, humanize.Bytes(uint64(len(out))), reduction, elapsed.Round(time.Microsecond))
	}
	return tw.Flush()
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
