package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/identity"
	"github.com/nfrund/examwhispers/internal/storage"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts of the local identity backend",
	}
	cmd.AddCommand(newAccountsCreateCmd())
	return cmd
}

func newAccountsCreateCmd() *cobra.Command {
	var creds domain.Credentials
	dataDir := defaultDataDir()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account in the local account store",
		Long: `Create an account that the local identity backend accepts at sign-in.

Example:
  whispers-cli accounts create --email student@example.com --password secret1 --data-dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds = creds.Trimmed()
			if err := validator.New().Struct(creds); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					return fmt.Errorf("--%s is required", flagName(verrs[0].Field()))
				}
				return err
			}

			provider := identity.NewLocalProvider(storage.NewDirStore(dataDir), nil)
			user, err := provider.Register(cmd.Context(), creds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Account created: %s (uid %s)\n", user.Email, user.UID)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&dataDir, "data-dir", dataDir, "Directory holding accounts.json")
	return cmd
}

func flagName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return field
	}
}

// defaultDataDir mirrors the server's DATA_DIR setting.
func defaultDataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}
