package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"musicreg/internal/gateway"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the account used to save registrations",
}

var (
	signup        gateway.Signup
	loginEmail    string
	loginPassword string
)

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if signup.Name == "" || signup.Email == "" {
			return errors.New("name and email are required")
		}
		if signup.Password == "" {
			pw, err := promptPassword()
			if err != nil {
				return err
			}
			signup.Password = pw
		}
		client := gateway.New(cfg.APIURL, "")
		sess, err := client.Register(cmd.Context(), signup)
		if err != nil {
			return fmt.Errorf("register failed: %w", err)
		}
		if err := saveToken(cfg.TokenPath, tokenData{Token: sess.Token, ExpiresAt: sess.ExpiresAt}); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "conta criada para %s\n", sess.User.Email)
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" {
			return errors.New("email is required")
		}
		if loginPassword == "" {
			pw, err := promptPassword()
			if err != nil {
				return err
			}
			loginPassword = pw
		}
		client := gateway.New(cfg.APIURL, "")
		sess, err := client.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveToken(cfg.TokenPath, tokenData{Token: sess.Token, ExpiresAt: sess.ExpiresAt}); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bem-vindo(a), %s\n", sess.User.Name)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		if client.Token != "" {
			// the local token is dropped even if the server is unreachable
			if err := client.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %v\n", err)
			}
		}
		if err := clearToken(cfg.TokenPath); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sessão encerrada")
		return nil
	},
}

var authMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authedClient()
		if err != nil {
			return err
		}
		me, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), me)
	},
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "senha: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	f := authRegisterCmd.Flags()
	f.StringVar(&signup.Name, "name", "", "first name")
	f.StringVar(&signup.Surname, "surname", "", "surname")
	f.StringVar(&signup.Email, "email", "", "email address")
	f.StringVar(&signup.Phone, "phone", "", "phone number")
	f.IntVar(&signup.Age, "age", 0, "age")
	f.StringVar(&signup.Password, "password", "", "password (prompted when empty)")

	authLoginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	authLoginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when empty)")

	authCmd.AddCommand(authRegisterCmd, authLoginCmd, authLogoutCmd, authMeCmd)
	rootCmd.AddCommand(authCmd)
}
