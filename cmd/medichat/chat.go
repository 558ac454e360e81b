package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
	"github.com/spf13/cobra"
)

func (a *app) chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [MESSAGE...]",
		Short: "Consult from the command line",
		Long: `Send MESSAGE and print the reply. Without arguments, read one message
per line from standard input and keep the conversation history until EOF
or "/keluar".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.require(medichat.PageDiagnosis); err != nil {
				return err
			}
			ctrl := medichat.NewChatController(time.Now)
			if len(args) > 0 {
				return a.chatTurn(cmd, ctrl, strings.Join(args, " "))
			}

			printMessage(a.con.out, ctrl.Messages()[0])
			for {
				a.con.printf("> ")
				line, err := a.con.readLine()
				if errors.Is(err, io.EOF) {
					a.con.println()
					return nil
				}
				if err != nil {
					return err
				}
				switch strings.TrimSpace(line) {
				case "":
					continue
				case "/keluar":
					return nil
				case "/baru":
					ctrl.Reset()
					printMessage(a.con.out, ctrl.Messages()[0])
					continue
				}
				if err := a.chatTurn(cmd, ctrl, line); err != nil {
					return err
				}
			}
		},
	}
}

// chatTurn sends text and prints the reply. A failed connection is printed
// as a bot message, the same as in the TUI; an expired session ends the
// conversation.
func (a *app) chatTurn(cmd *cobra.Command, ctrl *medichat.ChatController, text string) error {
	turn, err := ctrl.Submit(text)
	if err != nil {
		return err
	}
	resp, err := a.client.Chat(cmd.Context(), turn.Request)
	switch ctrl.Resolve(turn, resp, err) {
	case medichat.OutcomeLoginRequired:
		return a.apiError(err, "")
	case medichat.OutcomeFailed:
		a.logger.Warn("chat failed", "error", err)
	}
	msgs := ctrl.Messages()
	printMessage(a.con.out, msgs[len(msgs)-1])
	return nil
}

var boldText = lipgloss.NewStyle().Bold(true)

// printMessage writes a bot message with its list formatting, bold spans
// and numbered sources.
func printMessage(w io.Writer, msg medichat.Message) {
	var b strings.Builder
	for _, seg := range medichat.Format(msg.Text) {
		switch seg := seg.(type) {
		case medichat.Paragraph:
			b.WriteString(renderSpans(seg.Spans))
			b.WriteString("\n")
		case medichat.List:
			for _, item := range seg.Items {
				b.WriteString("  ")
				b.WriteString(renderSpans(item))
				b.WriteString("\n")
			}
		}
	}
	if len(msg.URLs) > 0 {
		b.WriteString("Referensi:\n")
		for i, u := range msg.URLs {
			fmt.Fprintf(&b, "  Sumber %d: %s\n", i+1, u)
		}
	}
	_, _ = io.WriteString(w, b.String())
}

func renderSpans(spans []medichat.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString(boldText.Render(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
