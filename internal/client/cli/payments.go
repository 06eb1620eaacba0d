package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/marmitaria/internal/format"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const paymentsUsage = "Uso: " + AppName + " payments <list|show|new|finalize> ..."

func (c *Cli) runPayments(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, paymentsUsage)
	}

	fs := newFlagSet("payments")
	transaction := fs.String("transaction", "", "transaction id")
	notes := fs.String("notes", "", "payment notes")
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		payments, err := c.api.ListPayments(ctx)
		if err != nil {
			return err
		}
		c.io.Println("=== Pagamentos ===")
		if len(payments) == 0 {
			c.io.Println("Nenhum pagamento registrado.")
			return nil
		}
		for _, p := range payments {
			c.printPaymentLine(p)
		}
		return nil
	case "show":
		id, err := idArg(rest, "Uso: "+AppName+" payments show <id>")
		if err != nil {
			return err
		}
		p, err := c.api.GetPayment(ctx, id)
		if err != nil {
			return err
		}
		c.printPaymentLine(*p)
		if p.PaidAt != nil {
			c.io.Printf("Pago em: %s\n", format.DateTime(p.PaidAt.Local()))
		}
		if p.Notes != nil && *p.Notes != "" {
			c.io.Printf("Obs.: %s\n", *p.Notes)
		}
		return nil
	case "new":
		const usage = "Uso: " + AppName + " payments new <pedido> <cash|credit_card|debit_card|pix|bank_transfer>"
		if len(rest) != 2 {
			return fmt.Errorf("%w: %s", ErrUsage, usage)
		}
		orderID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		method := pkgapi.PaymentMethod(rest[1])
		if !method.Valid() {
			return fmt.Errorf("%w: %s", ErrUsage, usage)
		}
		p, err := c.api.CreatePayment(ctx, pkgapi.CreatePaymentRequest{
			Order:         orderID,
			Method:        method,
			TransactionID: *transaction,
			Notes:         *notes,
		})
		if err != nil {
			return err
		}
		c.success("Pagamento #%d registrado (%s). Use 'payments finalize %d' para concluir.", p.ID, p.Status, p.ID)
		return nil
	case "finalize":
		id, err := idArg(rest, "Uso: "+AppName+" payments finalize <id>")
		if err != nil {
			return err
		}
		p, err := c.api.FinalizePayment(ctx, id)
		if err != nil {
			return err
		}
		c.success("Pagamento #%d concluído: %s", p.ID, format.Currency(p.Amount))
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUsage, paymentsUsage)
	}
}

func (c *Cli) printPaymentLine(p pkgapi.Payment) {
	c.io.Printf("#%-5d pedido #%-5d %-14s %-11s %12s  %s\n",
		p.ID, p.Order, p.Method, p.Status, format.Currency(p.Amount), format.DateTime(p.CreatedAt.Local()))
}
