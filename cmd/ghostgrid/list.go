package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the builtin levels together with the levels found in the custom level directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	s := loadSettings()
	logger, closeLog, err := newLogger(s, false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	lvls, err := loadLevels(s, logger)
	if err != nil {
		exitf("%v", err)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Limit", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, l := range lvls {
		limit := "-"
		if l.MoveLimit > 0 {
			limit = fmt.Sprintf("%d", l.MoveLimit)
		}
		source := ""
		if !l.Builtin {
			source = "  (custom)"
		}
		fmt.Printf("  %-*s  %-7s  %-6s  %s%s\n", maxIDLen, l.ID, fmt.Sprintf("%dx%d", l.Width, l.Height), limit, l.Title(), source)
	}

	fmt.Println()
	fmt.Println("Run 'ghostgrid play <id>' to play a level.")
}
