package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/mechapp/internal/config"
	dbpkg "github.com/BruksfildServices01/mechapp/internal/db"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

func newCreateAdminCmd(cfg *config.Config) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || name == "" {
				return errors.New("--name and --email are required")
			}
			if !fv.PasswordSatisfiesPolicy(password) {
				return errors.New("password does not satisfy the policy")
			}

			db, err := dbpkg.NewDB(cfg, zap.NewNop())
			if err != nil {
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			user := models.User{
				Name:         name,
				Email:        email,
				PasswordHash: string(hashed),
				Role:         models.RoleAdmin,
				Validated:    true,
				Active:       true,
			}
			if err := db.WithContext(cmd.Context()).Create(&user).Error; err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&password, "password", "", "Initial password")
	return cmd
}
