package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/medichat/medichat"
	"github.com/medichat/medichat/jwt"
	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = a.con.prompt("Username"); err != nil {
					return err
				}
			}
			password, err := a.con.promptSecret("Password")
			if err != nil {
				return err
			}
			creds := medichat.Credentials{Username: strings.TrimSpace(username), Password: password}
			if err := creds.Validate(); err != nil {
				return err
			}

			res, err := a.client.Login(cmd.Context(), creds)
			if err != nil {
				return a.apiError(err, "Username atau password salah")
			}
			id, err := a.session.Login(res)
			if err != nil {
				return fmt.Errorf("store session: %w", err)
			}
			a.con.printf("Halo, %s! Anda masuk sebagai %s.\n", id.FirstName(), roleLabel(id.Role))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.session.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			a.con.println("Anda telah keluar.")
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a patient account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var reg medichat.Registration
			fields := []struct {
				label  string
				dst    *string
				secret bool
			}{
				{"Nama Lengkap", &reg.FullName, false},
				{"Email", &reg.Email, false},
				{"Username", &reg.Username, false},
				{"Password", &reg.Password, true},
				{"Konfirmasi Password", &reg.ConfirmPassword, true},
			}
			for _, f := range fields {
				var err error
				if f.secret {
					*f.dst, err = a.con.promptSecret(f.label)
				} else {
					*f.dst, err = a.con.prompt(f.label)
					*f.dst = strings.TrimSpace(*f.dst)
				}
				if err != nil {
					return err
				}
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			if err := a.client.Register(cmd.Context(), reg); err != nil {
				return a.apiError(err, "Registrasi gagal. Username mungkin sudah dipakai.")
			}
			a.con.println("Registrasi berhasil! Silakan masuk dengan 'medichat login'.")
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.con.printf("Server: %s\n", a.cfg.ServerURL)
			id := a.session.Current()
			if !id.LoggedIn() {
				a.con.println("Belum masuk.")
				return nil
			}
			a.con.printf("Nama:   %s\n", id.DisplayName())
			a.con.printf("Email:  %s\n", orDash(id.Email))
			a.con.printf("Peran:  %s\n", roleLabel(id.Role))

			info, err := jwt.Inspect(id.Token)
			if err != nil {
				a.logger.Debug("inspect token", "error", err)
				a.con.println("Token:  tidak dapat dibaca")
				return nil
			}
			if info.Username != "" {
				a.con.printf("Akun:   %s\n", info.Username)
			}
			switch {
			case info.ExpiresAt.IsZero():
				a.con.println("Token:  tanpa masa berlaku")
			case info.Expired(time.Now()):
				a.con.printf("Token:  kedaluwarsa sejak %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			default:
				a.con.printf("Token:  berlaku sampai %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

func roleLabel(r medichat.Role) string {
	if r == medichat.RoleAdmin {
		return "Admin"
	}
	return "Pasien"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
