package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/distill/pkg/processor/builtin"
	"github.com/jmylchreest/distill/pkg/rules"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the processing stages usable in a pipeline file",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range builtin.NewRegistry().Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, builtin.Description[name])
		}
		return w.Flush()
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the default cleaning rules in execution order",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, r := range rules.NewDefaultEngine().Rules() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.Priority, r.Name, rules.Description[r.Name])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(rulesCmd)
}
