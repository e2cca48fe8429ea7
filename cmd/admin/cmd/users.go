package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/service"
)

func UsersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	var input service.RegisterInput
	var role string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with any role (teachers and directors are created here)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Role = model.Role(role)
			if input.Password == "" {
				input.Password = os.Getenv("ADMIN_USER_PASSWORD")
			}

			a, closeApp, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			user, profile, err := a.AuthService.CreateAccount(input)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s) id=%s group=%q\n",
				profile.Role, user.Email, profile.Name, user.ID, profile.GroupName)
			return nil
		},
	}
	createCmd.Flags().StringVar(&input.Email, "email", "", "Login email")
	createCmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	createCmd.Flags().StringVar(&role, "role", string(model.RoleTeacher), "student, teacher or director")
	createCmd.Flags().StringVar(&input.GroupName, "group", "", "Group (course) name; optional for directors")
	createCmd.Flags().StringVar(&input.Password, "password", "", "Initial password (default: $ADMIN_USER_PASSWORD)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("name")

	var userID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account and everything it recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeApp, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			err = a.UserService.Delete(userID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", userID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&userID, "user", "", "User ID to delete")
	_ = deleteCmd.MarkFlagRequired("user")

	usersCmd.AddCommand(createCmd)
	usersCmd.AddCommand(deleteCmd)
	return usersCmd
}
