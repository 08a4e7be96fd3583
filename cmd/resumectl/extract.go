package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text of a PDF or DOCX resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readResumeFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// readResumeFile deduce el tipo por extensión y extrae el texto.
func readResumeFile(path string) (string, error) {
	mediaType, err := extract.MediaTypeFromPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return extract.ExtractText(mediaType, data)
}
