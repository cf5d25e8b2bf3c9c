package cli

import (
	"context"
	"os"

	"github.com/spf13/pflag"
)

// EnvPassword supplies the password when --password is not given
const EnvPassword = "LT_PASSWORD"

type credentialFlags struct {
	Password string
}

func (f *credentialFlags) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.Password, "password", "", "Account password (or set "+EnvPassword+")")
}

func (f *credentialFlags) password() string {
	if f.Password != "" {
		return f.Password
	}
	return os.Getenv(EnvPassword)
}

// RegisterCommand handles the register command
type RegisterCommand struct {
	credentialFlags
	app *App
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app}
}

// Execute registers args[0] as a new user
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	id, err := c.app.businessAPI.Register(ctx, args[0], c.password())
	if err != nil {
		return c.app.errorHandler.Handle("register", err)
	}
	c.app.printf("%s %s (user id %d)\n", c.app.renderer.Success("Registered"), args[0], id)
	return nil
}

// LoginCommand handles the login command
type LoginCommand struct {
	credentialFlags
	app *App
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app}
}

// Execute checks the credentials of args[0]
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	id, err := c.app.businessAPI.Login(ctx, args[0], c.password())
	if err != nil {
		return c.app.errorHandler.Handle("log in", err)
	}
	c.app.printf("Login successful. User id: %d\n", id)
	return nil
}
