package main

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	newUsername string
	newPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user that can log in and modify the inventory",
	RunE:  runUserAdd,
}

func init() {
	userAddCmd.Flags().StringVarP(&newUsername, "username", "u", "", "username")
	userAddCmd.Flags().StringVarP(&newPassword, "password", "p", "", "password")
	_ = userAddCmd.MarkFlagRequired("username")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	u, err := st.users.CreateUser(cmd.Context(), models.User{Username: newUsername, PasswordHash: hash})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return fmt.Errorf("user %q already exists", newUsername)
	}
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}

	logger.Info("user created", zap.String("username", u.Username), zap.Int("id", u.ID))
	return nil
}
