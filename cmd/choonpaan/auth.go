package main

import (
	"fmt"

	"github.com/spf13/cobra"

	accountpkg "github.com/mikios34/choonpaan/account"
	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an identity provider account and its profile record.

Registration does not sign in. Run 'choonpaan login' afterwards.
Without --password or --confirm the password is prompted for.

Examples:
  choonpaan register --email a@example.com --name Abebe --password secret1 --confirm secret1
  choonpaan register --type driver --email d@example.com --name Dawit --password secret1 --confirm secret1`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session on this device",
	Long: `Sign in with email and password and keep the session on this device.

Without --password the password is prompted for.`,
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the session on this device",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the session on this device",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

// homeHints points each role at the commands it can use after login.
var homeHints = map[entity.Role]string{
	entity.RoleAdmin:  "Admin tools: choonpaan users | drivers | admins",
	entity.RoleDriver: "Driver profile: choonpaan profile show",
	entity.RoleUser:   "Your profile: choonpaan profile show",
}

var (
	regEmail    string
	regName     string
	regPassword string
	regConfirm  string
	regType     string

	loginEmail    string
	loginPassword string
)

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&regName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&regConfirm, "confirm", "", "Password again")
	registerCmd.Flags().StringVar(&regType, "type", string(entity.UserTypeUser), "Account type: user or driver")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	prompt := newSecretPrompt(cmd)
	if err := prompt.fill("password", "Password", &regPassword); err != nil {
		return err
	}
	if err := prompt.fill("confirm", "Confirm password", &regConfirm); err != nil {
		return err
	}
	res, err := current.Accounts.Register(cmd.Context(), accountpkg.RegisterForm{
		Email:           regEmail,
		Name:            regName,
		Password:        regPassword,
		ConfirmPassword: regConfirm,
		UserType:        entity.UserType(regType),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s (id %s)\n", res.Record.Email, res.Record.UserType, res.Principal.ID)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := newSecretPrompt(cmd).fill("password", "Password", &loginPassword); err != nil {
		return err
	}
	res, err := current.Accounts.Login(cmd.Context(), current.DeviceSessions(), accountpkg.Credentials{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in as %s (%s)\n", res.State.UserEmail, res.State.Role)
	fmt.Fprintln(out, homeHints[res.State.Role])
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	sessions := current.DeviceSessions()
	st, err := sessions.Restore(cmd.Context())
	if err != nil {
		return err
	}
	var sess *auth.Session
	if st != nil {
		sess = auth.NewSession(auth.Principal{ID: st.UserID, Email: st.UserEmail})
	}
	if err := current.Accounts.Logout(cmd.Context(), sessions, sess); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	st, err := current.DeviceSessions().Restore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if st == nil {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(out, "Signed in as %s\n", st.UserEmail)
	fmt.Fprintf(out, "  Role: %s\n", st.Role)
	fmt.Fprintf(out, "  ID:   %s\n", st.UserID)
	return nil
}
