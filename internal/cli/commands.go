package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillbridge/jobmatch/internal/client/dashboard"
	"github.com/skillbridge/jobmatch/internal/client/guard"
	"github.com/skillbridge/jobmatch/internal/client/session"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

func newSignInCmd(a *app) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:     "signin",
		Aliases: []string{"login"},
		Short:   "Sign in and open your dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSignIn(cmd.Context(), email, password, role)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SKILLBRIDGE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SKILLBRIDGE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&role, "role", "", `Account type: "Job Seeker", "Employer" or "Admin" (will prompt if not provided)`)

	return cmd
}

func (a *app) runSignIn(ctx context.Context, email, password, roleName string) error {
	if email == "" {
		email = os.Getenv("SKILLBRIDGE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SKILLBRIDGE_PASSWORD")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SKILLBRIDGE_EMAIL env var)")
	}

	var role domain.Role
	if roleName != "" {
		r, err := domain.ParseRole(roleName)
		if err != nil {
			return err
		}
		role = r
	} else {
		r, err := a.opts.Prompter.SelectRole()
		if err != nil && !errors.Is(err, errNotInteractive) {
			return err
		}
		role = r
	}

	if password == "" {
		p, err := a.opts.Prompter.Password("Password")
		if errors.Is(err, errNotInteractive) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or SKILLBRIDGE_PASSWORD env var)")
		}
		if err != nil {
			return err
		}
		password = p
	}

	form := validation.SignIn{Email: email, Password: password}
	if role.Valid() {
		form.Role = role.String()
	}
	form, err := validation.Check(validation.New(), form)
	if err != nil {
		return err
	}

	var landing string
	router := dashboard.NewRouter(a.store, dashboard.NavigatorFunc(func(p string) { landing = p }))
	defer router.Close()

	fmt.Fprintf(a.opts.Out, "Signing in to %s...\n", a.server)
	id, err := a.store.SignIn(ctx, domain.Credentials{Email: form.Email, Password: form.Password, Role: role})
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) && authErr.Kind == session.RoleMismatch {
			fmt.Fprintf(a.opts.Err, "! %s\n", authErr.Message)
			fmt.Fprintf(a.opts.Out, "-> %s\n", guard.UnauthorizedPath)
		}
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			for _, f := range fields {
				fmt.Fprintf(a.opts.Err, "! %s: %s\n", f.Field, f.Message)
			}
		}
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Fprintln(a.opts.Out, "✓ Signed in")
	fmt.Fprintf(a.opts.Out, "  User: %s (%s)\n", id.DisplayName(), id.Email())
	fmt.Fprintf(a.opts.Out, "  Role: %s\n", id.Role())
	if landing != "" {
		return a.show(landing)
	}
	return nil
}

func newSignOutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "signout",
		Aliases: []string{"logout"},
		Short:   "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.restore(cmd.Context())
			a.store.SignOut(cmd.Context())
			fmt.Fprintln(a.opts.Out, "✓ Signed out")
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.restore(cmd.Context())
			id, ok := a.store.CurrentIdentity()
			if !ok {
				fmt.Fprintln(a.opts.Out, "Not signed in")
				return nil
			}
			fmt.Fprintf(a.opts.Out, "%s (%s)\n", id.DisplayName(), id.Email())
			fmt.Fprintf(a.opts.Out, "  Role:      %s\n", id.Role())
			fmt.Fprintf(a.opts.Out, "  Dashboard: %s\n", dashboard.DashboardPath(id.Role()))
			fmt.Fprintf(a.opts.Out, "  Profile:   %s\n", dashboard.ProfilePath(id.Role()))
			return nil
		},
	}
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a page, checking it against your role",
		Example: `  skillbridge open /employer/post-job
  skillbridge open /admin/users`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.restore(cmd.Context())
			return a.show(args[0])
		},
	}
}

// show runs the guard for path and prints either the page or the redirect.
func (a *app) show(path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	d := a.guard.Evaluate(path)
	switch d.State {
	case guard.StateAuthorized:
		title := path
		if d.Route != nil {
			title = d.Route.Title
		}
		fmt.Fprintf(a.opts.Out, "-> %s\n   %s\n", path, title)
	case guard.StateLoading:
		fmt.Fprintln(a.opts.Out, "Loading...")
	default:
		fmt.Fprintf(a.opts.Out, "-> %s\n", d.Redirect)
	}
	return nil
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the saved session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.restore(cmd.Context())
			if err := a.store.Refresh(cmd.Context()); err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					fmt.Fprintf(a.opts.Out, "-> %s\n", guard.SignInPath)
				}
				return fmt.Errorf("refresh failed: %w", err)
			}
			fmt.Fprintln(a.opts.Out, "✓ Session renewed")
			return nil
		},
	}
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email yourself a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := validation.Check(validation.New(), validation.ForgotPassword{Email: email})
			if err != nil {
				return err
			}
			if err := a.client.ForgotPassword(cmd.Context(), form.Email); err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			fmt.Fprintln(a.opts.Out, "If the address is registered, a reset link is on its way.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change local settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.opts.Out, "config: %s\nserver: %s\n", a.opts.ConfigPath, a.server)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Save the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.opts.ConfigPath)
			if err != nil {
				return err
			}
			cfg.Server = strings.TrimRight(args[0], "/")
			if err := SaveConfig(a.opts.ConfigPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Out, "✓ Server set to %s\n", cfg.Server)
			return nil
		},
	})

	return cmd
}
