package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/marmitaria/internal/format"
	"github.com/iudanet/marmitaria/internal/validation"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

const usersUsage = "Uso: " + AppName + " users <list|show|add|update|delete> [id] [--yes]"

func (c *Cli) runUsers(ctx context.Context, args []string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, usersUsage)
	}

	fs := newFlagSet("users")
	yes := fs.Bool("yes", false, "skip confirmation")
	email := fs.String("email", "", "new e-mail")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	role := fs.String("role", "", "group: Admin or Caixa")
	active := fs.String("active", "", "true or false")
	resetPassword := fs.Bool("password", false, "prompt for a new password")
	rest, err := parseArgs(fs, args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		users, err := c.api.ListUsers(ctx)
		if err != nil {
			return err
		}
		c.io.Println("=== Usuários ===")
		for _, u := range users {
			c.printUserLine(u)
		}
		return nil
	case "show":
		id, err := idArg(rest, usersUsage)
		if err != nil {
			return err
		}
		u, err := c.api.GetUser(ctx, id)
		if err != nil {
			return err
		}
		c.printUserLine(*u)
		if u.FullName != "" {
			c.io.Printf("Nome:   %s\n", u.FullName)
		}
		c.io.Printf("Desde:  %s\n", format.Date(u.DateJoined.Local()))
		if u.LastLogin != nil {
			c.io.Printf("Último acesso: %s\n", format.DateTime(u.LastLogin.Local()))
		}
		return nil
	case "add":
		return c.addUser(ctx, *role)
	case "update":
		id, err := idArg(rest, usersUsage)
		if err != nil {
			return err
		}
		req := pkgapi.UserUpdateRequest{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "email":
				req.Email = email
			case "first-name":
				req.FirstName = firstName
			case "last-name":
				req.LastName = lastName
			case "role":
				req.Groups = []string{normalizeGroup(*role)}
			case "active":
				v := isYes(*active)
				req.IsActive = &v
			}
		})
		if *resetPassword {
			password, err := c.readNewPassword()
			if err != nil {
				return err
			}
			req.Password = &password
		}
		if _, err := c.api.UpdateUser(ctx, id, req); err != nil {
			return err
		}
		c.success("Usuário #%d atualizado.", id)
		return nil
	case "delete":
		id, err := idArg(rest, usersUsage)
		if err != nil {
			return err
		}
		if current := c.session.Current(); current != nil && current.UserID == id {
			return fmt.Errorf("%w: não é possível excluir o próprio usuário", ErrUsage)
		}
		if err := c.confirm(*yes, fmt.Sprintf("Excluir o usuário #%d?", id)); err != nil {
			return err
		}
		if err := c.api.DeleteUser(ctx, id); err != nil {
			return err
		}
		c.success("Usuário #%d excluído.", id)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUsage, usersUsage)
	}
}

func (c *Cli) printUserLine(u pkgapi.User) {
	role := "sem papel"
	switch {
	case u.IsAdmin:
		role = "admin"
	case u.IsCaixa:
		role = "caixa"
	}
	state := "ativo"
	if !u.IsActive {
		state = "inativo"
	}
	c.io.Printf("#%-4d %-20s %-28s %-9s %s\n", u.ID, u.Username, u.Email, role, state)
}

func (c *Cli) addUser(ctx context.Context, role string) error {
	c.io.Println("=== Novo usuário ===")

	username, err := c.prompt("Usuário", "")
	if err != nil {
		return err
	}
	if msg := validation.ValidateUsername(username); msg != "" {
		return validation.Errors{"username": {msg}}
	}
	email, err := c.prompt("E-mail", "")
	if err != nil {
		return err
	}
	password, err := c.readNewPassword()
	if err != nil {
		return err
	}
	if role == "" {
		if role, err = c.prompt("Papel (Admin/Caixa)", pkgapi.GroupCaixa); err != nil {
			return err
		}
	}

	u, err := c.api.CreateUser(ctx, pkgapi.UserCreateRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		Groups:          []string{normalizeGroup(role)},
		IsActive:        true,
	})
	if err != nil {
		return err
	}
	c.success("Usuário #%d criado: %s", u.ID, u.Username)
	return nil
}

// readNewPassword запрашивает пароль дважды
func (c *Cli) readNewPassword() (string, error) {
	password, err := c.io.ReadPassword("Senha: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirme a senha: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	verrs := validation.Errors{}
	if len(password) < validation.MinPasswordLen {
		verrs.Add("password", validation.MsgPasswordTooShort)
	}
	if password != confirm {
		verrs.Add("password_confirm", validation.MsgPasswordMismatch)
	}
	if err := verrs.Err(); err != nil {
		return "", err
	}
	return password, nil
}

func normalizeGroup(role string) string {
	if strings.EqualFold(role, pkgapi.GroupAdmin) {
		return pkgapi.GroupAdmin
	}
	return pkgapi.GroupCaixa
}
