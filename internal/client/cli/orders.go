package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iudanet/marmitaria/internal/format"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const ordersUsage = "Uso: " + AppName + " orders <list|show|new|add-item|remove-item|status|close|delete|bulk-delete> ..."

func (c *Cli) runOrders(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, ordersUsage)
	}

	fs := newFlagSet("orders")
	yes := fs.Bool("yes", false, "skip confirmation")
	paymentStatus := fs.String("status", "", "payment status filter: completed, pending, none")
	notes := fs.String("notes", "", "order notes")
	address := fs.String("address", "", "delivery address")
	fee := fs.String("fee", "0", "delivery fee")
	includePaid := fs.Bool("include-paid", false, "allow deleting paid orders")
	all := fs.Bool("all", false, "bulk delete every order")
	onlyOpen := fs.Bool("only-open", false, "bulk delete open orders only")
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.listOrders(ctx, *paymentStatus)
	case "show":
		id, err := idArg(rest, "Uso: "+AppName+" orders show <id>")
		if err != nil {
			return err
		}
		return c.showOrder(ctx, id)
	case "new":
		deliveryFee, err := parseMoney(*fee)
		if err != nil {
			return err
		}
		order, err := c.api.CreateOrder(ctx, pkgapi.CreateOrderRequest{
			Notes:           *notes,
			DeliveryAddress: *address,
			DeliveryFee:     deliveryFee,
		})
		if err != nil {
			return err
		}
		c.success("Pedido #%d criado.", order.ID)
		return nil
	case "add-item":
		return c.addOrderItem(ctx, rest)
	case "remove-item":
		id, err := idArg(rest, "Uso: "+AppName+" orders remove-item <item-id>")
		if err != nil {
			return err
		}
		if err := c.api.RemoveOrderItem(ctx, id); err != nil {
			return err
		}
		c.success("Item #%d removido.", id)
		return nil
	case "status":
		return c.setOrderStatus(ctx, rest)
	case "close":
		id, err := idArg(rest, "Uso: "+AppName+" orders close <id>")
		if err != nil {
			return err
		}
		closed := false
		if _, err := c.api.UpdateOrder(ctx, id, pkgapi.UpdateOrderRequest{IsOpen: &closed}); err != nil {
			return err
		}
		c.success("Pedido #%d fechado.", id)
		return nil
	case "delete":
		id, err := idArg(rest, "Uso: "+AppName+" orders delete <id> [--include-paid] [--yes]")
		if err != nil {
			return err
		}
		prompt := fmt.Sprintf("Excluir o pedido #%d?", id)
		if *includePaid {
			prompt = fmt.Sprintf("Excluir o pedido #%d, mesmo se já estiver pago?", id)
		}
		if err := c.confirm(*yes, prompt); err != nil {
			return err
		}
		if err := c.api.DeleteOrder(ctx, id, *includePaid); err != nil {
			return err
		}
		c.success("Pedido #%d excluído.", id)
		return nil
	case "bulk-delete":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		return c.bulkDeleteOrders(ctx, rest, *all, *onlyOpen, *includePaid, *yes)
	default:
		return fmt.Errorf("%w: %s", ErrUsage, ordersUsage)
	}
}

func (c *Cli) listOrders(ctx context.Context, paymentStatus string) error {
	orders, err := c.api.ListOrders(ctx, pkgapi.OrderFilter{PaymentStatus: paymentStatus})
	if err != nil {
		return err
	}

	c.io.Println("=== Pedidos ===")
	if len(orders) == 0 {
		c.io.Println("Nenhum pedido encontrado.")
		return nil
	}
	for _, o := range orders {
		state := "aberto"
		if !o.IsOpen {
			state = "fechado"
		}
		payment := "sem pagamento"
		if o.PaymentStatus != nil {
			payment = *o.PaymentStatus
		}
		c.io.Printf("#%-5d %-16s %-10s %-8s %-14s %12s\n",
			o.ID, format.DateTime(o.CreatedAt.Local()), o.Status, state, payment, format.Currency(o.GrandTotal()))
	}
	c.io.Printf("%d pedido(s), total %s\n", len(orders), format.Currency(grandTotal(orders)))
	return nil
}

func (c *Cli) showOrder(ctx context.Context, id int64) error {
	o, err := c.api.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("Pedido #%d (%s)\n", o.ID, o.Status)
	c.io.Printf("Criado em: %s\n", format.DateTime(o.CreatedAt.Local()))
	if o.CustomerUsername != "" {
		c.io.Printf("Cliente:   %s\n", o.CustomerUsername)
	}
	if o.DeliveryAddress != nil && *o.DeliveryAddress != "" {
		c.io.Printf("Entrega:   %s\n", *o.DeliveryAddress)
	}
	if o.Notes != nil && *o.Notes != "" {
		c.io.Printf("Obs.:      %s\n", *o.Notes)
	}
	c.io.Println()
	for _, item := range o.Items {
		name := "?"
		if item.Product != nil {
			name = item.Product.Name
		}
		c.io.Printf("  [%d] %dx %-28s %12s\n", item.ID, item.Quantity, name, format.Currency(item.LineTotal()))
	}
	c.io.Println()
	c.io.Printf("Subtotal: %s\n", format.Currency(o.Subtotal()))
	c.io.Printf("Entrega:  %s\n", format.Currency(o.DeliveryFee))
	c.io.Printf("Total:    %s\n", format.Currency(o.GrandTotal()))
	if o.IsPaid() {
		c.io.Println("Pagamento concluído.")
	}
	return nil
}

func (c *Cli) addOrderItem(ctx context.Context, args []string) error {
	const usage = "Uso: " + AppName + " orders add-item <pedido> <produto> [quantidade]"
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	orderID, err := parseID(args[0])
	if err != nil {
		return err
	}
	productID, err := parseID(args[1])
	if err != nil {
		return err
	}
	quantity := 1
	if len(args) == 3 {
		quantity, err = strconv.Atoi(args[2])
		if err != nil || quantity <= 0 {
			return fmt.Errorf("%w: invalid quantity %q", ErrUsage, args[2])
		}
	}

	item, err := c.api.AddOrderItem(ctx, orderID, pkgapi.AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return err
	}
	c.success("Item #%d adicionado ao pedido #%d.", item.ID, orderID)
	return nil
}

func (c *Cli) setOrderStatus(ctx context.Context, args []string) error {
	const usage = "Uso: " + AppName + " orders status <id> <pending|confirmed|preparing|ready|delivered|cancelled>"
	if len(args) != 2 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status := pkgapi.OrderStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}

	if _, err := c.api.UpdateOrder(ctx, id, pkgapi.UpdateOrderRequest{Status: &status}); err != nil {
		return err
	}
	c.success("Pedido #%d agora está %s.", id, status)
	return nil
}

func (c *Cli) bulkDeleteOrders(ctx context.Context, args []string, all, onlyOpen, includePaid, yes bool) error {
	req := pkgapi.BulkDeleteRequest{DeleteAll: all, OnlyOpen: onlyOpen, IncludePaid: includePaid}
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		req.OrderIDs = append(req.OrderIDs, id)
	}
	if !all && len(req.OrderIDs) == 0 {
		return fmt.Errorf("%w: informe os IDs ou --all", ErrUsage)
	}

	prompt := fmt.Sprintf("Excluir %d pedido(s)?", len(req.OrderIDs))
	if all {
		prompt = "Excluir TODOS os pedidos?"
	}
	if err := c.confirm(yes, prompt); err != nil {
		return err
	}

	result, message, err := c.api.BulkDeleteOrders(ctx, req)
	if err != nil {
		return err
	}
	if message == "" {
		message = fmt.Sprintf("%d pedido(s) excluído(s).", result.DeletedCount)
	}
	c.success("%s", message)
	return nil
}

// grandTotal суммирует итоги заказов
func grandTotal(orders []pkgapi.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.GrandTotal())
	}
	return sum
}
