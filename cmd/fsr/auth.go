package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HerodesVe/fsr-go/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}
			pair, err := a.authSvc().Login(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			err = a.sessions.Set(session.Session{
				AccessToken:  pair.AccessToken,
				RefreshToken: pair.RefreshToken,
				User:         pair.User,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Sesión iniciada como %s (%s)\n", pair.User.Name, pair.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session and clear cached data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sessions.Clear()
			a.store.Reset()
			fmt.Println("Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := a.sessions.Current()
			if sess == nil {
				return errors.New("no active session; run fsr login")
			}
			if a.output == "yaml" {
				return printYAML(sess.User)
			}
			fmt.Printf("%s (%s) rol=%s\n", sess.User.Name, sess.User.Username, sess.User.Role)
			return nil
		},
	}
}
