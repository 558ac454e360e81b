package main

import (
	"fmt"
	"strings"

	"github.com/medichat/medichat"
	"github.com/spf13/cobra"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change your name or password",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "name NAME...",
			Short: "Change the display name",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				editor, err := a.profileEditor()
				if err != nil {
					return err
				}
				editor.EditName()
				editor.Name = strings.Join(args, " ")
				return a.updateProfile(cmd, editor)
			},
		},
		&cobra.Command{
			Use:   "password",
			Short: "Change the password",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				editor, err := a.profileEditor()
				if err != nil {
					return err
				}
				editor.EditPassword()
				if editor.NewPassword, err = a.con.promptSecret("Password Baru"); err != nil {
					return err
				}
				if editor.ConfirmPassword, err = a.con.promptSecret("Konfirmasi Password"); err != nil {
					return err
				}
				return a.updateProfile(cmd, editor)
			},
		},
	)
	return cmd
}

func (a *app) profileEditor() (medichat.ProfileEditor, error) {
	id := a.session.Current()
	if !id.LoggedIn() {
		return medichat.ProfileEditor{}, fmt.Errorf("%w: jalankan 'medichat login' terlebih dahulu", medichat.ErrNotLoggedIn)
	}
	return medichat.NewProfileEditor(id), nil
}

// updateProfile sends the editor's change. The stored session is dropped on
// success so the next login picks up the new profile.
func (a *app) updateProfile(cmd *cobra.Command, editor medichat.ProfileEditor) error {
	upd, err := editor.Submit()
	if err != nil {
		return err
	}
	if err := a.client.UpdateProfile(cmd.Context(), upd); err != nil {
		return a.apiError(err, "Gagal memperbarui profil.")
	}
	if err := a.session.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.con.println("Berhasil diperbarui! Silakan login ulang untuk melihat perubahan.")
	return nil
}
