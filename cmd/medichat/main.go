// Command medichat is the terminal client for the MediChat medical
// consultation service.
//
// Usage:
//
//	medichat [--server URL] [--start PAGE]   open the terminal UI
//	medichat login                           sign in and store the session
//	medichat logout                          forget the stored session
//	medichat register                        create a patient account
//	medichat status                          show the stored session
//	medichat chat [MESSAGE...]               consult from the command line
//	medichat profile name NAME               change the display name
//	medichat profile password                change the password
//	medichat admin users list                list every account (admin)
//	medichat admin users edit USER           edit an account (admin)
//	medichat admin users delete USER         delete an account (admin)
//
// Configuration is read from ~/.medichat/config.yaml and MEDICHAT_*
// environment variables, for example MEDICHAT_SERVER_URL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "medichat: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home directory: %w", err)
	}
	a := newApp(home, newTerminalConsole())
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
