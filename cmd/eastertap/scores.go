package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eastertap/internal/game"
	"github.com/vovakirdan/eastertap/internal/storage"
)

var (
	flagClearScores bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores and the best score.

Examples:
  eastertap scores
  eastertap scores --all
  eastertap scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every recorded score, not only the top 10")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(game.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(game.GameID)
	} else {
		scores, err = store.TopScores(game.GameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Easter Tap")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'eastertap play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	best, err := store.HighScore(game.GameID)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}
	fmt.Printf("Best: %d", best)
	if stats, statsErr := store.GetGameStats(game.GameID); statsErr == nil {
		fmt.Printf("  (rounds: %d, average: %.1f)", stats.GamesCount, stats.AvgScore)
	}
	fmt.Println()
	return nil
}
