package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/rogerio-castellano/inventory-dashboard/internal/report"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportThreshold int
	reportXLSX      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard metrics as JSON",
	Long: `Reads one snapshot of products and categories straight from the store
and prints the same figures GET /metrics/dashboard returns.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportThreshold, "threshold", 0, "low stock threshold; inventory.low_stock_threshold when not set")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "also write the dashboard as an Excel workbook to this path")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	threshold, err := resolveThreshold(cmd.Flags().Changed("threshold"), reportThreshold, cfg.Inventory.LowStockThreshold)
	if err != nil {
		return err
	}

	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	products, categories, err := snapshot.Fetch(cmd.Context(), snapshot.NewRepoSource(st.products, st.categories))
	if err != nil {
		return err
	}

	d := inventory.BuildDashboard(products, categories, threshold)
	if d.UnresolvedCount > 0 {
		logger.Warn("report excludes products with missing categories", zap.Int("unresolved_count", d.UnresolvedCount))
	}

	if reportXLSX != "" {
		if err := writeWorkbook(reportXLSX, d); err != nil {
			return err
		}
		logger.Info("workbook written", zap.String("path", reportXLSX))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// resolveThreshold picks the flag value when it was given and the configured
// default otherwise.
func resolveThreshold(changed bool, value, def int) (int, error) {
	if !changed {
		return def, nil
	}
	if value < 0 {
		return 0, fmt.Errorf("threshold must be zero or positive, got %d", value)
	}
	return value, nil
}

func writeWorkbook(path string, d inventory.Dashboard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteXLSX(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
