package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var (
	userPassword      string
	userPasswordStdin bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login users",
}

var userAddCmd = &cobra.Command{
	Use:   "add USERNAME",
	Short: "Create a login user",
	Long: `Create a user that may log in to the mutating routes. The password is
taken from --password, or read as a single line from stdin with
--password-stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

func init() {
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password for the new user")
	userAddCmd.Flags().BoolVar(&userPasswordStdin, "password-stdin", false, "read the password from stdin")
	userAddCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	userAddCmd.MarkFlagsOneRequired("password", "password-stdin")

	userCmd.AddCommand(userAddCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	password := userPassword
	if userPasswordStdin {
		var err error
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	app, err := loadApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	user, err := app.authService.CreateUser(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	app.logger.Info("user created", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password on stdin")
	}
	return line, nil
}
