package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/domain"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/repository"
	"resume-analyzer/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume for a job role and experience level",
	Long:  "Analyze a resume (from --file or --text) with the configured LLM provider and print the JSON analysis.",
	RunE:  runAnalyze,
}

var (
	analyzeFile       string
	analyzeText       string
	analyzeRole       string
	analyzeCustomRole string
	analyzeLevel      string
	analyzeReportOut  string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to a .pdf or .docx resume")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Resume text (alternative to --file)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Job role identifier (see `resumectl roles`) or \"custom\"")
	analyzeCmd.Flags().StringVar(&analyzeCustomRole, "custom-role", "", "Free-text role title when --role=custom")
	analyzeCmd.Flags().StringVarP(&analyzeLevel, "level", "l", domain.ExperienceMid, "Experience level: entry, mid, senior, executive")
	analyzeCmd.Flags().StringVar(&analyzeReportOut, "report", "", "Also write a PDF report to this path")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Development logging to stderr")
	_ = analyzeCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if (analyzeFile == "") == (analyzeText == "") {
		return fmt.Errorf("provide exactly one of --file or --text")
	}

	resumeText := analyzeText
	if analyzeFile != "" {
		text, err := readResumeFile(analyzeFile)
		if err != nil {
			return err
		}
		resumeText = text
	}

	req := domain.AnalysisRequest{
		ResumeText:      resumeText,
		JobRole:         analyzeRole,
		CustomJobRole:   analyzeCustomRole,
		ExperienceLevel: analyzeLevel,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	if req.JobRole == domain.CustomJobRole && req.CustomJobRole == "" {
		fmt.Fprintln(os.Stderr, "Warning: --role=custom without --custom-role")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := zap.NewNop()
	if analyzeVerbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("llm client: %w", err)
	}

	svc := service.NewAnalysisService(llmClient, repository.NewMemoryAnalysisRepository(), nil, nil, logger)
	result, err := svc.Analyze(ctx, "", req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Response); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}

	if analyzeReportOut != "" {
		if err := writeReport(result.Response, analyzeReportOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", analyzeReportOut)
	}
	return nil
}
