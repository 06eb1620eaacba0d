package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/iudanet/marmitaria/internal/client/api"
	"github.com/iudanet/marmitaria/internal/client/auth"
	"github.com/iudanet/marmitaria/internal/client/errmsg"
	"github.com/iudanet/marmitaria/internal/client/iocli"
	"github.com/iudanet/marmitaria/internal/validation"
)

// AppName имя бинаря в подсказках
const AppName = "marmita"

// Маркеры сообщений: успех и ошибка
const (
	okMark  = "✓"
	errMark = "✗"
)

var (
	// ErrNotAuthenticated команда требует входа
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAdminOnly команда доступна только администратору
	ErrAdminOnly = errors.New("admin only")

	// ErrUsage неверные аргументы команды
	ErrUsage = errors.New("invalid usage")

	// ErrCancelled оператор не подтвердил действие
	ErrCancelled = errors.New("cancelled")
)

// Сообщения интерфейса
const (
	MsgNotAuthenticated = "Você não está autenticado. Execute '" + AppName + " login' primeiro."
	MsgAdminOnly        = "Apenas administradores podem realizar esta ação."
	MsgSessionExpired   = "Sessão expirada. Execute '" + AppName + " login' para entrar novamente."
	MsgCancelled        = "Operação cancelada."
)

// Options значения из конфигурации для неинтерактивного запуска
type Options struct {
	Username string
	Password string
}

// Cli исполняет команды и реализует api.Navigator для терминала
type Cli struct {
	io       iocli.IO
	api      api.ClientAPI
	session  *auth.SessionStore
	opts     Options
	location string
	mu       sync.Mutex
}

func New(io iocli.IO, client api.ClientAPI, session *auth.SessionStore, opts Options) *Cli {
	return &Cli{
		io:       io,
		api:      client,
		session:  session,
		opts:     opts,
		location: "/",
	}
}

// Location returns the current pseudo-route
func (c *Cli) Location() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// Redirect moves to path; moving to /login tells the operator the session is gone
func (c *Cli) Redirect(path string) {
	c.mu.Lock()
	c.location = path
	c.mu.Unlock()

	if path == api.RouteLogin {
		c.io.Println("⚠ " + MsgSessionExpired)
	}
}

func (c *Cli) navigate(path string) {
	c.mu.Lock()
	c.location = path
	c.mu.Unlock()
}

// Run выполняет команду и печатает ошибку. Возвращённая ошибка уже показана.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.PrintUsage()
		return ErrUsage
	}

	command, rest := args[0], args[1:]
	c.navigate("/" + command)

	var err error
	switch command {
	case "login":
		err = c.runLogin(ctx, rest)
	case "signup", "register":
		err = c.runSignup(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus()
	case "products":
		err = c.runProducts(ctx, rest)
	case "orders":
		err = c.runOrders(ctx, rest)
	case "payments":
		err = c.runPayments(ctx, rest)
	case "expenses":
		err = c.runExpenses(ctx, rest)
	case "users":
		err = c.runUsers(ctx, rest)
	case "reports":
		err = c.runReports(ctx, rest)
	case "help", "-h", "--help":
		c.PrintUsage()
		return nil
	default:
		c.io.Printf("Comando desconhecido: %s\n\n", command)
		c.PrintUsage()
		return ErrUsage
	}

	if err != nil {
		c.printError(err)
	}
	return err
}

// printError показывает ошибку пользователю: общий текст и ошибки полей
func (c *Cli) printError(err error) {
	var verrs validation.Errors
	var respErr *api.ResponseError

	switch {
	case errors.Is(err, ErrCancelled):
		c.io.Println(MsgCancelled)
	case errors.Is(err, ErrNotAuthenticated):
		c.io.Println(errMark + " " + MsgNotAuthenticated)
	case errors.Is(err, ErrAdminOnly):
		c.io.Println(errMark + " " + MsgAdminOnly)
	case errors.As(err, &verrs):
		c.io.Println(errMark + " " + validation.MsgFixForm)
		c.printFieldErrors(verrs)
	case errors.As(err, &respErr), isTransportError(err):
		c.io.Println(errMark + " " + errmsg.Message(err))
		c.printFieldErrors(errmsg.ValidationErrors(err))
	default:
		c.io.Println(errMark + " " + err.Error())
	}
}

func (c *Cli) printFieldErrors(fields map[string][]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.io.Printf("  %s: %s\n", k, strings.Join(fields[k], " "))
	}
}

func (c *Cli) success(format string, a ...any) {
	c.io.Printf(okMark+" "+format+"\n", a...)
}

// requireSession проверяет наличие сессии без обращения к серверу
func (c *Cli) requireSession() error {
	if c.session.Current() == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// requireAdmin только для интерфейса, сервер проверяет права сам
func (c *Cli) requireAdmin() error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if !c.session.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// confirm спрашивает подтверждение, если не передан --yes
func (c *Cli) confirm(yes bool, prompt string) error {
	if yes {
		return nil
	}
	ok, err := iocli.Confirm(c.io, prompt)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseArgs разрешает флаги после позиционных аргументов
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUsage, err.Error())
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, s)
	}
	return id, nil
}

// idArg берёт единственный позиционный ID
func idArg(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return parseID(args[0])
}

// isTransportError ответа от сервера не было
func isTransportError(err error) bool {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) {
		return false
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
}

func (c *Cli) PrintUsage() {
	c.io.Println("Marmitaria - cliente do ponto de venda")
	c.io.Println()
	c.io.Println("Uso:")
	c.io.Printf("  %s [OPÇÕES] COMANDO [ARGUMENTOS]\n", AppName)
	c.io.Println()
	c.io.Println("Opções:")
	c.io.Println("  --version              Mostra a versão")
	c.io.Println("  --config PATH          Arquivo YAML de configuração (env MARMITA_CONFIG)")
	c.io.Println("  --server URL           URL base da API (padrão: http://localhost:8000/api)")
	c.io.Println("  --driver NAME          Armazenamento da sessão: bolt, sqlite, memory")
	c.io.Println("  --db PATH              Arquivo da sessão local")
	c.io.Println("  --timeout DURATION     Tempo limite das requisições (padrão: 30s)")
	c.io.Println("  --log-level LEVEL      debug, info, warn, error")
	c.io.Println("  --log-format FORMAT    text, json")
	c.io.Println()
	c.io.Println("Comandos:")
	c.io.Println("  login [usuário]                      Entrar")
	c.io.Println("  signup                               Criar conta")
	c.io.Println("  logout                               Sair")
	c.io.Println("  status                               Sessão atual")
	c.io.Println("  products list|show|add|update|delete Produtos")
	c.io.Println("  orders list|show|new|add-item|remove-item|status|close|delete|bulk-delete")
	c.io.Println("  payments list|show|new|finalize      Pagamentos")
	c.io.Println("  expenses list|show|add|update|delete Saídas de caixa")
	c.io.Println("  users list|show|add|update|delete    Usuários (admin)")
	c.io.Println("  reports dashboard|<tipo>|export <tipo>")
	c.io.Println()
	c.io.Println("Tipos de relatório: sales, products, orders, financial, expenses")
	c.io.Println()
	c.io.Println("Exemplos:")
	c.io.Printf("  %s login caixa1\n", AppName)
	c.io.Printf("  %s orders list --status pending\n", AppName)
	c.io.Printf("  %s orders delete 12 --include-paid --yes\n", AppName)
	c.io.Printf("  %s reports export financial --from 2025-03-01 --out caixa.csv\n", AppName)
}
