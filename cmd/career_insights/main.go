// Package main provides the entry point for the Career Insights CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_insights",
	Short: "Career prospect analysis from Statistics Canada data",
	Long:  "Career Insights fetches census and labour force statistics from the Statistics Canada Web Data Service and runs a suite of career prospect analyses for a field of study, education level, and region.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
