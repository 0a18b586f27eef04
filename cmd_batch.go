package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"exoplanet-explorer/batch"
	"exoplanet-explorer/models"
	"exoplanet-explorer/spreadsheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputDir string

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Classify every row of a CSV/Excel file and write a results CSV",
	Long: `Classifies all rows in groups of batch.group_size concurrent requests.
A failing row is recorded as FAILED and never stops the batch.

Example:
  exoplanet-explorer batch toi.xlsx -o results/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the results file (overrides batch.output_dir)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	// An interrupted batch still writes the rows it finished.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	rows, err := spreadsheet.LoadAll(filepath.Base(args[0]), f, cfg.Server.MaxRows)
	f.Close()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	started := time.Now()
	results, runErr := a.pipeline.Run(ctx, rows, func(done, total int) {
		fmt.Fprintf(out, "Processed %d / %d\n", done, total)
	})
	if runErr != nil && results == nil {
		return runErr
	}
	finished := time.Now()

	dir := outputDir
	if dir == "" {
		dir = cfg.Batch.OutputDir
	}
	outName := batch.FileName(finished)
	if err := writeResults(filepath.Join(dir, outName), results); err != nil {
		return err
	}

	run := batch.NewRun(filepath.Base(args[0]), outName, results, started, finished)
	if err := a.repo.SaveBatchRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("Failed to save batch run", zap.Error(err))
	}

	fmt.Fprintf(out, "%d succeeded, %d failed, results in %s\n", run.Succeeded, run.Failed, filepath.Join(dir, outName))
	return runErr
}

func writeResults(path string, results []models.BatchResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	w := bufio.NewWriter(f)
	err = batch.WriteCSV(w, results)
	if err == nil {
		err = w.Flush()
	}
	return errors.Join(err, f.Close())
}
