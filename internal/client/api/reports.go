package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathReports = "/reports/"

func (c *Client) Dashboard(ctx context.Context) (*api.Dashboard, error) {
	var dashboard api.Dashboard
	if _, err := c.call(ctx, http.MethodGet, pathReports+"dashboard/", nil, nil, &dashboard); err != nil {
		return nil, fmt.Errorf("get dashboard failed: %w", err)
	}
	return &dashboard, nil
}

// Report возвращает отчёт вида kind с фильтрами
func (c *Client) Report(ctx context.Context, kind api.ReportKind, filter api.ReportFilter) (api.Report, error) {
	report := api.Report{}
	path := pathReports + string(kind) + "/"
	if _, err := c.call(ctx, http.MethodGet, path, filter.Values(), nil, &report); err != nil {
		return nil, fmt.Errorf("get %s report failed: %w", kind, err)
	}
	return report, nil
}

// ExportCSV скачивает CSV отчёта байт в байт
func (c *Client) ExportCSV(ctx context.Context, kind api.ReportKind, filter api.ReportFilter) ([]byte, error) {
	path := pathReports + string(kind) + "/export_csv/"
	data, err := c.download(ctx, path, filter.Values())
	if err != nil {
		return nil, fmt.Errorf("export %s csv failed: %w", kind, err)
	}
	return data, nil
}
