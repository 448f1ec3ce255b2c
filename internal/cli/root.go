package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skillbridge/jobmatch/internal/client/apiclient"
	"github.com/skillbridge/jobmatch/internal/client/guard"
	"github.com/skillbridge/jobmatch/internal/client/session"
	"github.com/skillbridge/jobmatch/pkg/logger"
)

// Options lets callers replace the process-wide collaborators. Zero values
// select the real ones: OS keyring, stdio, the user config file.
type Options struct {
	Persister  session.Persister
	ConfigPath string
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	Logger     *zerolog.Logger
	Prompter   Prompter
}

// app holds what every command needs once flags are parsed.
type app struct {
	opts   Options
	client *apiclient.Client
	store  *session.Store
	guard  *guard.Guard
	log    zerolog.Logger
	server string
}

// NewRootCmd builds the skillbridge command tree.
func NewRootCmd(version string, opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Prompter == nil {
		opts.Prompter = terminalPrompter{in: opts.In, out: opts.Err}
	}

	var (
		serverFlag string
		verbose    bool
		a          = &app{opts: opts}
	)

	root := &cobra.Command{
		Use:   "skillbridge",
		Short: "SkillBridge - sign in and open your dashboard",
		Long: `SkillBridge CLI - the client side of SkillBridge access control.

It keeps your session in the OS keyring, checks every page you open against
your role, and sends you to your dashboard after signing in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(serverFlag, verbose)
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&serverFlag, "server", "", "API base URL (or set "+serverEnv+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skillbridge version %s\n", version)
		},
	})
	root.AddCommand(newSignInCmd(a))
	root.AddCommand(newSignOutCmd(a))
	root.AddCommand(newWhoAmICmd(a))
	root.AddCommand(newOpenCmd(a))
	root.AddCommand(newRefreshCmd(a))
	root.AddCommand(newForgotPasswordCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

func (a *app) init(serverFlag string, verbose bool) error {
	if a.opts.Logger != nil {
		a.log = *a.opts.Logger
	} else {
		level := "warn"
		if verbose {
			level = "debug"
		}
		a.log = logger.Init(logger.Options{Level: level, Pretty: true, Output: a.opts.Err})
	}

	path := a.opts.ConfigPath
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
		a.opts.ConfigPath = p
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	a.server = resolveServer(serverFlag, cfg)
	a.client = apiclient.New(a.server)

	persister := a.opts.Persister
	if persister == nil {
		persister = session.NewKeyringPersister()
	}
	storeOpts := []session.Option{
		session.WithPersister(persister),
		session.WithLogger(a.log.With().Str("component", "session").Logger()),
	}
	if cfg.Timeout > 0 {
		storeOpts = append(storeOpts, session.WithTimeout(cfg.Timeout))
	}
	a.store = session.NewStore(a.client, storeOpts...)

	notices := guard.NotifierFunc(func(n guard.Notice) {
		fmt.Fprintf(a.opts.Err, "! %s\n", n.Message)
	})
	a.guard = guard.New(a.store, notices, guard.DefaultRoutes(), a.log.With().Str("component", "guard").Logger())

	a.log.Debug().Str("server", a.server).Msg("client initialised")
	return nil
}

// restore loads the persisted session. An unreachable server is reported but
// the saved session is still used.
func (a *app) restore(ctx context.Context) {
	if err := a.store.Rehydrate(ctx); err != nil {
		fmt.Fprintf(a.opts.Err, "warning: %v\n", err)
	}
}

// Execute runs the root command against the real environment.
func Execute(version string) error {
	root := NewRootCmd(version, Options{})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
