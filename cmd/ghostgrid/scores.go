package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostgrid/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the best runs of a level",
	Long: `Display the top scores and the fewest-moves solution for the specified level.

Examples:
  ghostgrid scores 01-first-steps
  ghostgrid scores 04-crossing --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	s := loadSettings()
	logger, closeLog, err := newLogger(s, false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	level, err := resolveLevel(s, args[0])
	if err != nil {
		exitf("%v\nRun 'ghostgrid list' to see available levels.", err)
	}
	logger.Debug("showing scores", "level", level.ID, "db", s.DB)

	store, err := storage.Open(s.DB)
	if err != nil {
		exitf("opening runs database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(level.ID, flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", level.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No solved runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ghostgrid play %s' to set the first score!\n", level.ID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "Rank", "Score", "Moves", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-12s  %s\n", i+1, entry.Score, entry.Moves, entry.Player, dateStr)
	}

	fmt.Println()
	if best, err := store.BestRun(level.ID); err == nil && best != nil {
		fmt.Printf("Fewest moves: %d by %s (%d turns, score %d)\n", best.Moves, best.Player, best.Turns, best.Score)
	}
	if stats, err := store.GetLevelStats(level.ID); err == nil && stats.Plays > 0 {
		fmt.Printf("Played %d times, solved %d\n", stats.Plays, stats.Wins)
	}
}
