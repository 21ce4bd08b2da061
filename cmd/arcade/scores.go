package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
	"github.com/vovakirdan/crossy-arcade/internal/registry"
	"github.com/vovakirdan/crossy-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRemote bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

With --remote the shared Postgres leaderboard is queried instead of the
local database (requires --leaderboard-dsn).

Examples:
  arcade scores crossy
  arcade scores crossy --limit 25
  arcade scores crossy --remote --leaderboard-dsn postgres://arcade@localhost/arcade`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresRemote, "remote", false, "Query the shared leaderboard")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if flagScoresRemote {
		if err := printRemoteScores(info.Title, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	nameW := len("Name")
	for _, e := range scores {
		nameW = max(nameW, len(e.PlayerName))
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %-5s  %s\n", "Rank", nameW, "Name", "Score", "Corn", "Date")
	fmt.Printf("  %-4s  %-*s  %-6s  %-5s  %s\n", "----", nameW, "----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-*s  %-6d  %-5d  %s\n", i+1, nameW, e.PlayerName, e.Score, e.Corn, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d   Runs: %d   Avg: %.1f   Corn: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalCorn)
	}
}

func printRemoteScores(title, gameID string) error {
	if flagLeaderboardDSN == "" {
		return fmt.Errorf("--remote needs --leaderboard-dsn or ARCADE_LEADERBOARD_DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := leaderboard.OpenPostgres(ctx, flagLeaderboardDSN)
	if err != nil {
		return err
	}
	defer pg.Close()

	rows, err := pg.Top(ctx, gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard - %s\n", title)
	fmt.Println()
	if len(rows) == 0 {
		fmt.Println("No scores submitted yet.")
		return nil
	}

	nameW := len("Name")
	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
	}
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "Rank", nameW, "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "----", nameW, "----", "-----", "----")
	for i, r := range rows {
		fmt.Printf("  %-4d  %-*s  %-6d  %s\n", i+1, nameW, r.Name, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
