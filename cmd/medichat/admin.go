package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/medichat/medichat"
	"github.com/spf13/cobra"
)

func (a *app) adminCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	users.AddCommand(a.adminListCmd(), a.adminEditCmd(), a.adminDeleteCmd())

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator commands",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			return a.require(medichat.PageAdmin)
		},
	}
	cmd.AddCommand(users)
	return cmd
}

func (a *app) adminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.client.ListUsers(cmd.Context())
			if err != nil {
				return a.apiError(err, "Gagal memuat data user.")
			}
			a.con.println(userTable(users))
			a.con.printf("%d user\n", len(users))
			return nil
		},
	}
}

func userTable(users []medichat.User) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Username", "Email", "Nama Lengkap", "Role")
	for _, u := range users {
		t.Row(u.Username, u.EmailOrDash(), u.FullName, strings.ToUpper(string(u.Role)))
	}
	return t.String()
}

func (a *app) adminEditCmd() *cobra.Command {
	var (
		name        string
		setPassword bool
	)
	cmd := &cobra.Command{
		Use:   "edit USERNAME",
		Short: "Change an account's name or password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.findUser(cmd, args[0])
			if err != nil {
				return err
			}
			upd := medichat.UserUpdate{FullName: target.FullName}
			if cmd.Flags().Changed("name") {
				upd.FullName = strings.TrimSpace(name)
			}
			if setPassword {
				if upd.Password, err = a.con.promptSecret("Password Baru"); err != nil {
					return err
				}
			}
			if err := upd.Validate(target); err != nil {
				return err
			}
			if err := a.client.UpdateUser(cmd.Context(), target.Username, upd); err != nil {
				return a.apiError(err, "Gagal update user")
			}
			a.con.println("Data user diperbarui!")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new full name")
	cmd.Flags().BoolVar(&setPassword, "password", false, "prompt for a new password")
	return cmd
}

func (a *app) adminDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.findUser(cmd, args[0])
			if err != nil {
				return err
			}
			if !target.Manageable() {
				return fmt.Errorf("user %s adalah admin: %w", target.Username, medichat.ErrForbidden)
			}
			if !yes {
				ok, err := a.con.confirm(fmt.Sprintf("Yakin ingin menghapus user %s?", target.Username))
				if err != nil {
					return err
				}
				if !ok {
					a.con.println("Dibatalkan.")
					return nil
				}
			}
			if err := a.client.DeleteUser(cmd.Context(), target.Username); err != nil {
				return a.apiError(err, "Gagal menghapus user")
			}
			a.con.println("User berhasil dihapus")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

// findUser looks username up in the account list.
func (a *app) findUser(cmd *cobra.Command, username string) (medichat.User, error) {
	users, err := a.client.ListUsers(cmd.Context())
	if err != nil {
		return medichat.User{}, a.apiError(err, "Gagal memuat data user.")
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return medichat.User{}, fmt.Errorf("user %s tidak ditemukan", username)
}
