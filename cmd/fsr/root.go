package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/config"
	"github.com/HerodesVe/fsr-go/internal/services"
	"github.com/HerodesVe/fsr-go/internal/session"
	"github.com/HerodesVe/fsr-go/internal/store"
)

// app wires config, session, client and store for every command.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions *session.Store
	client   *api.Client
	store    *store.Store
	notes    *store.Recorder
	output   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "fsr",
		Short:         "FSR permit-management console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.flushNotifications()
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table or yaml")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newClientsCmd(a),
		newTramitesCmd(a),
		newServiciosCmd(a),
		newUbigeoCmd(a),
	)
	return root
}

func (a *app) init(configPath string) error {
	var err error
	if configPath != "" {
		a.cfg, err = config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		a.cfg = config.Load()
	}

	if a.cfg.LogMode == "dev" {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	a.sessions, err = session.Open(a.cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	a.client = api.New(a.cfg.BaseURL, a.sessions, a.cfg.Timeout, a.log)
	a.notes = &store.Recorder{}
	a.store = store.New(a.notes, a.log)
	return nil
}

// flushNotifications prints the toasts a command produced, one line each.
func (a *app) flushNotifications() {
	if a.notes == nil {
		return
	}
	for _, n := range a.notes.All() {
		prefix := "ok"
		if n.Level == "error" {
			prefix = "error"
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", prefix, n.Message)
	}
}

// printYAML renders any value as YAML for -o yaml.
func printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// table writes aligned rows to stdout.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func (a *app) authSvc() *services.AuthService {
	return services.NewAuthService(a.client)
}
