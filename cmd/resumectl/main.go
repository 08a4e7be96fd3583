// Package main es la CLI de análisis de currículums: extrae texto, analiza y genera reportes sin levantar el servidor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumectl",
	Short: "Resume analyzer command line",
	Long:  "resumectl extracts text from PDF/DOCX resumes, analyzes them with the configured LLM provider and renders PDF reports.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
