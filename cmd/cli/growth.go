package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var growthDays int

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Show the daily signup series",
	Long: `Fetch the user growth series: one row per day over the lookback
window, with new signups and the cumulative total.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showGrowth()
	},
}

func init() {
	growthCmd.Flags().IntVar(&growthDays, "days", 30, "Lookback window in days")
}

func showGrowth() error {
	body, err := apiGet(fmt.Sprintf("/api/admin/analytics/growth?days=%d", growthDays))
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var result struct {
		Series []struct {
			Date            string `json:"date"`
			NewUsers        int64  `json:"new_users"`
			CumulativeUsers int64  `json:"cumulative_users"`
		} `json:"series"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("\n📈 User Growth (%d days)\n", growthDays)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("%-12s %10s %12s\n", "Date", "New", "Cumulative")
	for _, point := range result.Series {
		fmt.Printf("%-12s %10d %12d\n", point.Date, point.NewUsers, point.CumulativeUsers)
	}
	fmt.Printf("\n")

	return nil
}
