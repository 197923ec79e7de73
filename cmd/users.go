package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
)

var (
	userName     string
	userEmail    string
	userPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an ADMIN account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createAccount(models.RoleAdmin)
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a USER account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createAccount(models.RoleUser)
	},
}

func createAccount(role string) error {
	user, err := database.CreateUser(config.GetDB(), userName, userEmail, userPassword, role)
	if err != nil {
		return err
	}
	config.GetLogger().Info("account created",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{createAdminCmd, createUserCmd} {
		c.Flags().StringVar(&userName, "name", "", "display name")
		c.Flags().StringVar(&userEmail, "email", "", "login email")
		c.Flags().StringVar(&userPassword, "password", "", "login password")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
		rootCmd.AddCommand(c)
	}
}
