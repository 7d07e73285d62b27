package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reflowlabs/reflow/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format         string
	OutputDir      string
	Verbose        bool
	ProcessingTime time.Duration
	InputFiles     map[string]string
}

// Generate creates output in the specified format
func Generate(result dto.ReflowResponseDTO, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result dto.ReflowResponseDTO, config Config) error {
	fmt.Printf("Reflow Results Summary\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Total Orders: %d\n", result.Metadata.TotalOrders)
	fmt.Printf("Rescheduled: %d\n", result.Metadata.RescheduledCount)
	fmt.Printf("Fixed (never moved): %d\n", result.Metadata.FixedCount)
	fmt.Printf("Processing Time: %v\n\n", config.ProcessingTime)

	if len(result.Results) > 0 {
		fmt.Printf("Scheduled Work Orders:\n")
		fmt.Printf("%-12s %-12s %-22s %-22s %-10s\n",
			"Order", "Work Center", "New Start", "New End", "Moved")
		fmt.Printf("%-12s %-12s %-22s %-22s %-10s\n",
			"------------", "------------", "----------------------", "----------------------", "----------")

		for _, r := range result.Results {
			fmt.Printf("%-12s %-12s %-22s %-22s %-10t\n",
				r.WorkOrderID,
				r.WorkCenterID,
				r.NewStart.Format(time.RFC3339),
				r.NewEnd.Format(time.RFC3339),
				r.WasRescheduled)
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
		fmt.Println()
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "reflow_results.txt")
		if config.Verbose {
			fmt.Printf("Results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result dto.ReflowResponseDTO, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "reflow_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result dto.ReflowResponseDTO, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resultsFile := filepath.Join(config.OutputDir, "scheduled_orders.csv")
	if err := writeResultsCSV(result.Results, resultsFile); err != nil {
		return fmt.Errorf("failed to write scheduled orders CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to: %s\n", resultsFile)
	}

	return nil
}

func writeResultsCSV(results []dto.ResultDTO, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"work_order_id", "work_center_id", "original_start", "original_end", "new_start", "new_end", "was_rescheduled", "is_fixed"}); err != nil {
		return err
	}

	for _, r := range results {
		if err := w.Write([]string{
			r.WorkOrderID,
			r.WorkCenterID,
			r.OriginalStart.Format(time.RFC3339),
			r.OriginalEnd.Format(time.RFC3339),
			r.NewStart.Format(time.RFC3339),
			r.NewEnd.Format(time.RFC3339),
			fmt.Sprintf("%t", r.WasRescheduled),
			fmt.Sprintf("%t", r.IsFixed),
		}); err != nil {
			return err
		}
	}

	return w.Error()
}
