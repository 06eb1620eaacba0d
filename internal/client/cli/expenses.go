package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/iudanet/marmitaria/internal/format"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const expensesUsage = "Uso: " + AppName + " expenses <list|show|add|update|delete> [id] [--from AAAA-MM-DD] [--to AAAA-MM-DD] [--category C]"

func (c *Cli) runExpenses(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, expensesUsage)
	}

	fs := newFlagSet("expenses")
	yes := fs.Bool("yes", false, "skip confirmation")
	filter := bindReportFilter(fs)
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		f, err := filter.build()
		if err != nil {
			return err
		}
		return c.listExpenses(ctx, f)
	case "show":
		id, err := idArg(rest, expensesUsage)
		if err != nil {
			return err
		}
		e, err := c.api.GetExpense(ctx, id)
		if err != nil {
			return err
		}
		c.printExpenseLine(*e)
		if e.Notes != nil && *e.Notes != "" {
			c.io.Printf("Obs.: %s\n", *e.Notes)
		}
		return nil
	case "add":
		c.io.Println("=== Nova saída de caixa ===")
		req, err := c.readExpense(pkgapi.ExpenseRequest{Category: pkgapi.ExpenseOther})
		if err != nil {
			return err
		}
		e, err := c.api.CreateExpense(ctx, req)
		if err != nil {
			return err
		}
		c.success("Saída #%d registrada: %s", e.ID, format.Currency(e.Amount))
		return nil
	case "update":
		id, err := idArg(rest, expensesUsage)
		if err != nil {
			return err
		}
		current, err := c.api.GetExpense(ctx, id)
		if err != nil {
			return err
		}
		def := pkgapi.ExpenseRequest{Category: current.Category, Description: current.Description, Amount: current.Amount}
		if current.Notes != nil {
			def.Notes = *current.Notes
		}
		c.io.Printf("=== Editar saída #%d (Enter mantém o valor) ===\n", id)
		req, err := c.readExpense(def)
		if err != nil {
			return err
		}
		if _, err := c.api.UpdateExpense(ctx, id, req); err != nil {
			return err
		}
		c.success("Saída #%d atualizada.", id)
		return nil
	case "delete":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		id, err := idArg(rest, expensesUsage)
		if err != nil {
			return err
		}
		if err := c.confirm(*yes, fmt.Sprintf("Excluir a saída #%d?", id)); err != nil {
			return err
		}
		if err := c.api.DeleteExpense(ctx, id); err != nil {
			return err
		}
		c.success("Saída #%d excluída.", id)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUsage, expensesUsage)
	}
}

func (c *Cli) listExpenses(ctx context.Context, filter pkgapi.ReportFilter) error {
	expenses, err := c.api.ListExpenses(ctx, filter)
	if err != nil {
		return err
	}
	c.io.Println("=== Saídas de caixa ===")
	if len(expenses) == 0 {
		c.io.Println("Nenhuma saída registrada.")
		return nil
	}
	for _, e := range expenses {
		c.printExpenseLine(e)
	}
	c.io.Printf("Total: %s\n", format.Currency(pkgapi.TotalExpenses(expenses)))
	return nil
}

func (c *Cli) printExpenseLine(e pkgapi.Expense) {
	c.io.Printf("#%-5d %-16s %-12s %-30s %12s\n",
		e.ID, format.DateTime(e.CreatedAt.Local()), e.Category, e.Description, format.Currency(e.Amount))
}

func (c *Cli) readExpense(def pkgapi.ExpenseRequest) (pkgapi.ExpenseRequest, error) {
	req := def

	desc, err := c.prompt("Descrição", def.Description)
	if err != nil {
		return req, err
	}
	req.Description = desc

	category, err := c.prompt("Categoria", string(def.Category))
	if err != nil {
		return req, err
	}
	req.Category = pkgapi.ExpenseCategory(category)

	amountDef := ""
	if !def.Amount.IsZero() {
		amountDef = def.Amount.StringFixed(2)
	}
	amount, err := c.prompt("Valor", amountDef)
	if err != nil {
		return req, err
	}
	if req.Amount, err = parseMoney(amount); err != nil {
		return req, err
	}

	notes, err := c.prompt("Observações", def.Notes)
	if err != nil {
		return req, err
	}
	req.Notes = notes
	return req, nil
}

// reportFilterFlags общие флаги периода для saídas и отчётов
type reportFilterFlags struct {
	from, to, groupBy, category, method, status *string
	limit                                       *int
}

func bindReportFilter(fs *flag.FlagSet) *reportFilterFlags {
	return &reportFilterFlags{
		from:     fs.String("from", "", "start date YYYY-MM-DD"),
		to:       fs.String("to", "", "end date YYYY-MM-DD"),
		groupBy:  fs.String("group-by", "", "day, week or month"),
		category: fs.String("category", "", "category filter"),
		method:   fs.String("method", "", "payment method filter"),
		status:   fs.String("order-status", "", "order status filter"),
		limit:    fs.Int("limit", 0, "row limit"),
	}
}

func (f *reportFilterFlags) build() (pkgapi.ReportFilter, error) {
	filter := pkgapi.ReportFilter{
		GroupBy:       *f.groupBy,
		Category:      *f.category,
		PaymentMethod: *f.method,
		Status:        *f.status,
		Limit:         *f.limit,
	}
	var err error
	if filter.StartDate, err = parseDate(*f.from); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDate(*f.to); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, format.LayoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", ErrUsage, s)
}
