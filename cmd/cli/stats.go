package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the platform snapshot",
	Long: `Fetch the dashboard snapshot: user, item, engagement, and report
counters. Metrics that failed to compute are listed separately rather
than failing the whole command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStats()
	},
}

func showStats() error {
	body, err := apiGet("/api/admin/dashboard")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var snapshot struct {
		TotalUsers       *int64   `json:"total_users"`
		TotalItems       *int64   `json:"total_items"`
		TotalViews       *int64   `json:"total_views"`
		TotalFavorites   *int64   `json:"total_favorites"`
		TotalMessages    *int64   `json:"total_messages"`
		TotalReports     *int64   `json:"total_reports"`
		ActiveUsersToday *int64   `json:"active_users_today"`
		NewUsersToday    *int64   `json:"new_users_today"`
		NewItemsToday    *int64   `json:"new_items_today"`
		PendingReports   *int64   `json:"pending_reports"`
		Unavailable      []string `json:"unavailable,omitempty"`
		GeneratedAt      string   `json:"generated_at"`
	}
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("\n📊 Platform Snapshot\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	printCounter("Total users", snapshot.TotalUsers)
	printCounter("Total items", snapshot.TotalItems)
	printCounter("Total views", snapshot.TotalViews)
	printCounter("Total favorites", snapshot.TotalFavorites)
	printCounter("Total messages", snapshot.TotalMessages)
	printCounter("Total reports", snapshot.TotalReports)
	printCounter("Active users today", snapshot.ActiveUsersToday)
	printCounter("New users today", snapshot.NewUsersToday)
	printCounter("New items today", snapshot.NewItemsToday)
	printCounter("Pending reports", snapshot.PendingReports)

	if len(snapshot.Unavailable) > 0 {
		fmt.Printf("\n⚠️  Unavailable metrics: %v\n", snapshot.Unavailable)
	}
	fmt.Printf("\nGenerated at: %s\n\n", snapshot.GeneratedAt)

	return nil
}

func printCounter(label string, value *int64) {
	if value == nil {
		fmt.Printf("%-20s n/a\n", label+":")
		return
	}
	fmt.Printf("%-20s %d\n", label+":", *value)
}
