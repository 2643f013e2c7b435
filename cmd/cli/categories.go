package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show available items by category",
	Long: `Fetch the category distribution of currently available items,
sorted by count with percentage shares.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCategories()
	},
}

func showCategories() error {
	body, err := apiGet("/api/admin/analytics/categories")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var result struct {
		Categories []struct {
			Category   string  `json:"category"`
			Count      int64   `json:"count"`
			Percentage float64 `json:"percentage"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Categories) == 0 {
		fmt.Println("No available items.")
		return nil
	}

	fmt.Printf("\n🗂  Category Distribution\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	for _, share := range result.Categories {
		fmt.Printf("%-16s %6d  %6.2f%%\n", share.Category, share.Count, share.Percentage)
	}
	fmt.Printf("\n")

	return nil
}
