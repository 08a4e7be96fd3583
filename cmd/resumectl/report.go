package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/domain"
	"resume-analyzer/internal/report"
	"resume-analyzer/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a saved analysis JSON as a PDF report",
	RunE:  runReport,
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List known job role identifiers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, role := range service.KnownRoles() {
			fmt.Fprintln(cmd.OutOrStdout(), role)
		}
		return nil
	},
}

var (
	reportInputFile  string
	reportOutputFile string
)

func init() {
	reportCmd.Flags().StringVarP(&reportInputFile, "in", "i", "", "Path to an analysis JSON file")
	reportCmd.Flags().StringVarP(&reportOutputFile, "out", "o", report.Filename, "Path to the output PDF")
	_ = reportCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(reportCmd, rolesCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(reportInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var resp domain.AnalysisResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse analysis JSON: %w", err)
	}
	if err := writeReport(resp, reportOutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", reportOutputFile)
	return nil
}

func writeReport(resp domain.AnalysisResponse, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.Render(resp, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render report: %w", err)
	}
	return f.Close()
}
