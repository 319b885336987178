package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/airfryer/internal/display"
	"github.com/hammamikhairi/airfryer/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List food categories and their conversion rules",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(display.RenderCategories(domain.Categories()))
		fmt.Println("Temperatures are reduced in your unit; aliases: frozen, veg, meat, baked, fish.")
	},
}
