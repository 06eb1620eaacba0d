package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iudanet/marmitaria/internal/format"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const productsUsage = "Uso: " + AppName + " products <list|show|add|update|delete> [id] [--yes]"

func (c *Cli) runProducts(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, productsUsage)
	}

	fs := newFlagSet("products")
	yes := fs.Bool("yes", false, "skip confirmation")
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.listProducts(ctx)
	case "show":
		id, err := idArg(rest, productsUsage)
		if err != nil {
			return err
		}
		return c.showProduct(ctx, id)
	case "add":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		return c.addProduct(ctx)
	case "update":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		id, err := idArg(rest, productsUsage)
		if err != nil {
			return err
		}
		return c.updateProduct(ctx, id)
	case "delete":
		if err := c.requireAdmin(); err != nil {
			return err
		}
		id, err := idArg(rest, productsUsage)
		if err != nil {
			return err
		}
		if err := c.confirm(*yes, fmt.Sprintf("Excluir o produto #%d?", id)); err != nil {
			return err
		}
		if err := c.api.DeleteProduct(ctx, id); err != nil {
			return err
		}
		c.success("Produto #%d excluído.", id)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUsage, productsUsage)
	}
}

func (c *Cli) listProducts(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Produtos ===")
	if len(products) == 0 {
		c.io.Println("Nenhum produto cadastrado.")
		return nil
	}
	for _, p := range products {
		available := "disponível"
		if !p.IsAvailable {
			available = "indisponível"
		}
		c.io.Printf("#%-4d %-30s %-16s %12s  %s\n", p.ID, p.Name, p.Category, format.Currency(p.Price), available)
	}
	return nil
}

func (c *Cli) showProduct(ctx context.Context, id int64) error {
	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	c.io.Printf("Produto #%d\n", p.ID)
	c.io.Printf("Nome:       %s\n", p.Name)
	c.io.Printf("Categoria:  %s\n", p.Category)
	c.io.Printf("Preço:      %s\n", format.Currency(p.Price))
	c.io.Printf("Disponível: %t\n", p.IsAvailable)
	if p.Description != "" {
		c.io.Printf("Descrição:  %s\n", p.Description)
	}
	return nil
}

func (c *Cli) addProduct(ctx context.Context) error {
	c.io.Println("=== Novo produto ===")
	req, err := c.readProduct(pkgapi.ProductRequest{Category: pkgapi.CategoryMarmitas, IsAvailable: true})
	if err != nil {
		return err
	}
	p, err := c.api.CreateProduct(ctx, req)
	if err != nil {
		return err
	}
	c.success("Produto #%d criado: %s", p.ID, p.Name)
	return nil
}

func (c *Cli) updateProduct(ctx context.Context, id int64) error {
	current, err := c.api.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	c.io.Printf("=== Editar produto #%d (Enter mantém o valor) ===\n", id)
	req, err := c.readProduct(pkgapi.ProductRequest{
		Name:        current.Name,
		Description: current.Description,
		Category:    current.Category,
		Price:       current.Price,
		IsAvailable: current.IsAvailable,
	})
	if err != nil {
		return err
	}
	p, err := c.api.UpdateProduct(ctx, id, req)
	if err != nil {
		return err
	}
	c.success("Produto #%d atualizado.", p.ID)
	return nil
}

// readProduct читает поля формы; пустой ввод оставляет значение по умолчанию
func (c *Cli) readProduct(def pkgapi.ProductRequest) (pkgapi.ProductRequest, error) {
	req := def

	name, err := c.prompt("Nome", def.Name)
	if err != nil {
		return req, err
	}
	req.Name = name

	category, err := c.prompt("Categoria", string(def.Category))
	if err != nil {
		return req, err
	}
	req.Category = pkgapi.ProductCategory(category)

	price, err := c.prompt("Preço", def.Price.StringFixed(2))
	if err != nil {
		return req, err
	}
	if req.Price, err = parseMoney(price); err != nil {
		return req, err
	}

	desc, err := c.prompt("Descrição", def.Description)
	if err != nil {
		return req, err
	}
	req.Description = desc

	available, err := c.prompt("Disponível (s/n)", yesNo(def.IsAvailable))
	if err != nil {
		return req, err
	}
	req.IsAvailable = isYes(available)
	return req, nil
}

// prompt показывает значение по умолчанию в скобках
func (c *Cli) prompt(label, def string) (string, error) {
	text := label + ": "
	if def != "" {
		text = fmt.Sprintf("%s [%s]: ", label, def)
	}
	value, err := c.io.ReadInput(text)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// parseMoney принимает 12.50 и 12,50
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", ErrUsage, s)
	}
	return d, nil
}

func yesNo(b bool) string {
	if b {
		return "s"
	}
	return "n"
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim", "y", "yes", "true":
		return true
	}
	return false
}
