package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/iudanet/marmitaria/internal/format"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const reportsUsage = "Uso: " + AppName + " reports <dashboard|sales|products|orders|financial|expenses|export <tipo>> [--from] [--to] [--group-by] [--out arquivo]"

func (c *Cli) runReports(ctx context.Context, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, reportsUsage)
	}

	fs := newFlagSet("reports")
	out := fs.String("out", "", "CSV output file, stdout by default")
	filterFlags := bindReportFilter(fs)
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}
	filter, err := filterFlags.build()
	if err != nil {
		return err
	}

	switch args[0] {
	case "dashboard":
		return c.showDashboard(ctx)
	case "export":
		if len(rest) != 1 {
			return fmt.Errorf("%w: %s", ErrUsage, reportsUsage)
		}
		kind, ok := pkgapi.ParseReportKind(rest[0])
		if !ok {
			return fmt.Errorf("%w: unknown report %q", ErrUsage, rest[0])
		}
		return c.exportReport(ctx, kind, filter, *out)
	default:
		kind, ok := pkgapi.ParseReportKind(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrUsage, reportsUsage)
		}
		return c.showReport(ctx, kind, filter)
	}
}

func (c *Cli) showDashboard(ctx context.Context) error {
	d, err := c.api.Dashboard(ctx)
	if err != nil {
		return err
	}

	s := d.Summary
	c.io.Println("=== Painel ===")
	c.io.Printf("Faturamento:       %s\n", money(s.TotalRevenue))
	c.io.Printf("  produtos:        %s\n", money(s.TotalProductsRevenue))
	c.io.Printf("  taxas de entrega: %s\n", money(s.TotalDeliveryFees))
	c.io.Printf("Saídas:            %s\n", money(s.TotalExpenses))
	c.io.Printf("Lucro:             %s\n", money(s.Profit))
	c.io.Printf("Últimos dias:      %s faturado, %s de lucro\n", money(s.RecentRevenue), money(s.RecentProfit))
	c.io.Printf("Pedidos:           %d (%d abertos, %d fechados)\n", s.TotalOrders, s.OpenOrders, s.ClosedOrders)
	c.io.Printf("Pagamentos pendentes: %d\n", s.PendingPayments)

	if len(d.TopProducts) > 0 {
		c.io.Println()
		c.io.Println("Mais vendidos:")
		for i, p := range d.TopProducts {
			c.io.Printf("  %d. %-28s %4d un. %12s\n", i+1, p.Name, p.TotalQuantity, money(p.TotalRevenue))
		}
	}
	if len(d.OrdersByStatus) > 0 {
		c.io.Println()
		c.io.Println("Pedidos por status:")
		for _, sc := range d.OrdersByStatus {
			c.io.Printf("  %-12s %d\n", sc.Status, sc.Count)
		}
	}
	return nil
}

// showReport печатает разделы отчёта как есть, в отсортированном порядке
func (c *Cli) showReport(ctx context.Context, kind pkgapi.ReportKind, filter pkgapi.ReportFilter) error {
	report, err := c.api.Report(ctx, kind, filter)
	if err != nil {
		return err
	}

	c.io.Printf("=== Relatório: %s ===\n", kind)
	sections := make([]string, 0, len(report))
	for name := range report {
		sections = append(sections, name)
	}
	slices.Sort(sections)

	for _, name := range sections {
		var buf bytes.Buffer
		if err := json.Indent(&buf, report[name], "  ", "  "); err != nil {
			buf.Reset()
			buf.Write(report[name])
		}
		c.io.Printf("%s:\n  %s\n", name, buf.String())
	}
	return nil
}

func (c *Cli) exportReport(ctx context.Context, kind pkgapi.ReportKind, filter pkgapi.ReportFilter, path string) error {
	data, err := c.api.ExportCSV(ctx, kind, filter)
	if err != nil {
		return err
	}

	if path == "" {
		if _, err := c.io.Write(data); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	c.success("Relatório %s exportado para %s", kind, path)
	return nil
}

func money(v float64) string {
	return format.Currency(decimal.NewFromFloat(v))
}
