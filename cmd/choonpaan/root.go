package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mikios34/choonpaan/app"
	"github.com/mikios34/choonpaan/config"
	"github.com/mikios34/choonpaan/entity"
)

// errNotLoggedIn is returned by commands that need a restored session.
var errNotLoggedIn = errors.New("not logged in; run 'choonpaan login' first")

var (
	configPath string

	// current is the app built for the running command.
	current *app.App

	buildApp = app.Build
)

var rootCmd = &cobra.Command{
	Use:           "choonpaan",
	Short:         "Delivery accounts, profiles and admin tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: could not load .env: %v", err)
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		err := current.Close()
		current = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// requireRole restores the device session and checks its role.
func requireRole(cmd *cobra.Command, allowed ...entity.Role) (*entity.SessionState, error) {
	st, err := current.DeviceSessions().Restore(cmd.Context())
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errNotLoggedIn
	}
	if len(allowed) > 0 && !slices.Contains(allowed, st.Role) {
		return nil, fmt.Errorf("this command needs role %v, signed in as %s", allowed, st.Role)
	}
	return st, nil
}

func printRecords(cmd *cobra.Command, records []entity.ProfileRecord, empty string) {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("  %s  %s <%s>", r.ID, r.Name, r.Email)
		if r.Status != "" {
			line += " [" + string(r.Status) + "]"
		}
		fmt.Fprintln(out, line)
	}
}
