package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/brightops/prove/core/checks"
	"github.com/brightops/prove/internal/contract"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// checkInfo is the wire shape of one registry entry in JSON mode.
type checkInfo struct {
	ID       string   `json:"id"`
	Class    string   `json:"class"`
	Profiles []string `json:"profiles"`
	Modes    []string `json:"modes,omitempty"`
}

// checksCmd lists the check registry without running anything.
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the registered checks and when each one runs.",
	Long: `Print the check registry: every check id, its class (critical checks
abort the run on failure), the profiles it belongs to, and any mode
restriction. No repository access happens; this is pure introspection.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defs := checks.All()
		if cfg.JSONOutput {
			for _, d := range defs {
				payload, _ := json.Marshal(describeCheck(d))
				fmt.Println(string(payload))
			}
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Check", "Class", "Profiles", "Modes"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignLeft
		})
		for _, d := range defs {
			info := describeCheck(d)
			modes := strings.Join(info.Modes, ",")
			if modes == "" {
				modes = "any"
			}
			_ = table.Append([]string{info.ID, info.Class, strings.Join(info.Profiles, ","), modes})
		}
		_ = table.Render()
	},
}

// describeCheck flattens a CheckDef into its printable shape.
func describeCheck(d contract.CheckDef) checkInfo {
	info := checkInfo{ID: d.ID, Class: string(d.Class)}
	for _, p := range d.Profiles {
		info.Profiles = append(info.Profiles, string(p))
	}
	for _, m := range d.Modes {
		info.Modes = append(info.Modes, string(m))
	}
	return info
}
