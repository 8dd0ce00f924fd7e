package cli

import (
	"github.com/spf13/cobra"

	"resumelens/internal/ai"
	"resumelens/internal/analysis"
	"resumelens/internal/common"
	"resumelens/internal/formatters"
	"resumelens/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume document",
	Long: `Analyze reads the resume at the given path, runs the three AI
analysis tasks concurrently, and prints the combined result.

A task that fails (AI unavailable, unusable response) is reported as a
failure marker inside the result; the remaining tasks still complete.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
	analyzeCmd.Flags().StringP("format", "f", "", "output format (json, text, markdown)")
	analyzeCmd.Flags().String("report", "", "also render a PDF report to this path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := requireContext(cmd)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	reportPath, _ := cmd.Flags().GetString("report")
	if format == "" {
		format = cfg.App.DefaultFormat
	}
	if err := common.ValidateOutputFormat(format, cfg.App.SupportedFormats); err != nil {
		logger.LogError(err, "Invalid output format requested")
		return err
	}

	processor := common.NewFileProcessor(cfg, logger)
	doc, err := processor.ReadDocument(args[0])
	if err != nil {
		logger.LogError(err, "Failed to load resume document", "path", args[0])
		return err
	}

	gateway, err := ai.NewGeminiProvider(cfg, logger)
	if err != nil {
		logger.LogError(err, "Failed to initialize AI gateway")
		return err
	}
	defer gateway.Close()

	orchestrator := analysis.NewOrchestrator(gateway, logger)
	result, err := orchestrator.Analyze(cmd.Context(), doc)
	if err != nil {
		logger.LogError(err, "Analysis failed", "path", args[0])
		return err
	}

	var content string
	if format == "json" {
		data, err := report.Export(result)
		if err != nil {
			logger.LogError(err, "Failed to export result")
			return err
		}
		content = string(data)
	} else {
		content, err = formatters.GlobalRegistry.Format(result, format)
		if err != nil {
			logger.LogError(err, "Failed to format result", "format", format)
			return err
		}
	}

	handler := common.NewOutputHandler(logger)
	if err := handler.Deliver(content, outputPath); err != nil {
		logger.LogError(err, "Failed to deliver output")
		return err
	}

	if reportPath != "" {
		renderer := report.NewPDFRenderer(cfg.Report)
		pdfBytes, err := renderer.Render(result)
		if err != nil {
			logger.LogError(err, "Failed to render PDF report")
			return err
		}
		if err := handler.WriteFile(pdfBytes, reportPath); err != nil {
			logger.LogError(err, "Failed to write PDF report", "path", reportPath)
			return err
		}
	}

	return nil
}
