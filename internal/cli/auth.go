package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covtrace/tracetriage/internal/model"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		store.Logout()
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		u := store.Current()
		fmt.Printf("%s (%s)\n", u.Email, u.Role)
		if u.FullName != "" {
			fmt.Println(u.FullName)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (prompted when omitted)")
	registerCmd.Flags().String("name", "", "full name")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	if err := store.Login(cmd.Context(), email, password); err != nil {
		var authErr *model.AuthError
		if errors.As(err, &authErr) {
			return errors.New("Invalid email or password. Please try again.")
		}
		return err
	}

	u := store.Current()
	fmt.Printf("Logged in as %s (%s)\n", u.Email, u.Role)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	email, password, err := credentials(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	if err := store.Register(cmd.Context(), email, password, name); err != nil {
		var valErr *model.ValidationError
		if errors.As(err, &valErr) {
			return fmt.Errorf("registration rejected: %s", valErr.Message)
		}
		return err
	}

	u := store.Current()
	fmt.Printf("Registered and logged in as %s (%s)\n", u.Email, u.Role)
	return nil
}

func credentials(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Fprint(os.Stderr, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if email == "" || password == "" {
		return "", "", errors.New("email and password are required")
	}
	return email, password, nil
}
