package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/db"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a user account",
	Long: `Create a user account.

When no password is given, a random one is generated and printed to
STDOUT. Registration through the API is the normal path; this command
exists for bootstrapping and operations.

Example:
  rocketctl user create alice@example.com
  rocketctl user create alice@example.com --full-name "Alice Liddell"
  rocketctl user create alice@example.com --password hunter2secret`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		password, _ := cmd.Flags().GetString("password")
		fullName, _ := cmd.Flags().GetString("full-name")

		generated := password == ""

		user, password, err := createUser(email, password, fullName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s' (id: %s)\n", user.Email, user.ID)
		if generated {
			fmt.Printf("Generated password: %s\n", password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("password", "p", "", "Password (default: generated)")
	userCreateCmd.Flags().StringP("full-name", "n", "", "Full name")
}

func createUser(email, password, fullName string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("'%s' is not a valid email address", email)
	}

	if password == "" {
		raw := make([]byte, 18)
		if _, err := rand.Read(raw); err != nil {
			return nil, "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(raw)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: fullName,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	users := gormstore.NewUsersStore(database)
	if err := users.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, "", fmt.Errorf("email '%s' is already registered", email)
		}
		return nil, "", err
	}

	return user, password, nil
}
