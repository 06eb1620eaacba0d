package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/marmitaria/internal/client/api"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.navigate(api.RouteLogin)
	c.io.Println("=== Login ===")
	c.io.Println()

	username := c.opts.Username
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		var err error
		username, err = c.io.ReadInput("Usuário: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password := c.opts.Password
	if password == "" {
		var err error
		password, err = c.io.ReadPassword("Senha: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	c.io.Println("Autenticando...")
	result := c.session.Login(ctx, username, password)
	if !result.Success {
		return errors.New(result.Error)
	}

	c.navigate("/")
	session := result.Session
	c.io.Println()
	c.success("Login realizado com sucesso!")
	c.io.Printf("Usuário: %s\n", session.Username)
	c.io.Printf("Papel:   %s\n", session.Role())
	if session.Degraded {
		c.io.Println("⚠ Não foi possível confirmar o perfil no servidor; permissões estimadas localmente.")
	}
	if result.Warning != "" {
		c.io.Println("⚠ " + result.Warning)
	}
	return nil
}

func (c *Cli) runSignup(ctx context.Context) error {
	c.navigate(api.RouteSignup)
	c.io.Println("=== Criar conta ===")
	c.io.Println()

	var req pkgapi.RegisterRequest
	fields := []struct {
		target *string
		prompt string
		secret bool
	}{
		{target: &req.Username, prompt: "Usuário: "},
		{target: &req.Email, prompt: "E-mail (opcional): "},
		{target: &req.FirstName, prompt: "Nome (opcional): "},
		{target: &req.LastName, prompt: "Sobrenome (opcional): "},
		{target: &req.Password, prompt: "Senha: ", secret: true},
		{target: &req.PasswordConfirm, prompt: "Confirme a senha: ", secret: true},
	}
	for _, f := range fields {
		var err error
		if f.secret {
			*f.target, err = c.io.ReadPassword(f.prompt)
		} else {
			*f.target, err = c.io.ReadInput(f.prompt)
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	resp, err := c.session.Register(ctx, req)
	if err != nil {
		return err
	}

	message := resp.Message
	if message == "" {
		message = "Conta criada com sucesso!"
	}
	c.navigate(api.RouteLogin)
	c.io.Println()
	c.success("%s", message)
	c.io.Printf("Agora entre com '%s login %s'.\n", AppName, resp.Username)
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if err := c.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.navigate(api.RouteLogin)
	c.success("Logout realizado.")
	c.io.Println("A sessão local foi removida.")
	return nil
}

// runStatus показывает сессию из локального хранилища, без сети
func (c *Cli) runStatus() error {
	c.io.Println("=== Sessão ===")
	c.io.Println()

	session := c.session.Current()
	if session == nil {
		c.io.Println("Status: não autenticado")
		c.io.Println()
		c.io.Printf("Execute '%s login' para entrar.\n", AppName)
		return nil
	}

	c.io.Println("Status: autenticado")
	c.io.Printf("Usuário: %s\n", session.Username)
	if session.Email != "" {
		c.io.Printf("E-mail:  %s\n", session.Email)
	}
	if session.UserID != 0 {
		c.io.Printf("ID:      %d\n", session.UserID)
	}
	c.io.Printf("Papel:   %s\n", session.Role())
	if session.Degraded {
		c.io.Println("⚠ Perfil estimado localmente (servidor indisponível no login).")
	}
	return nil
}
