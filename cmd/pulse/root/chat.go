package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ai"
	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the AI tutor (interactive without a message)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if msg := joinArgs(args); msg != "" {
				_, err := chatTurn(ctx, svc, out, []engine.ChatTurn{{From: engine.ChatUser, Text: msg}})
				return err
			}
			return chatLoop(ctx, svc, cmd.InOrStdin(), out)
		},
	}

	return cmd
}

func chatLoop(ctx context.Context, svc *engine.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, ui.Heading(ui.IconBrain, "Pulse tutor"))
	fmt.Fprintln(out, ui.Muted.Render("Try: "+strings.Join(ai.SamplePrompts, " | ")))
	fmt.Fprintln(out, ui.Muted.Render("Type \"exit\" to leave."))

	var turns []engine.ChatTurn
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, ui.Key.Render("you> "))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		next := append(turns, engine.ChatTurn{From: engine.ChatUser, Text: line})
		reply, err := chatTurn(ctx, svc, out, next)
		if err != nil {
			if errors.Is(err, engine.ErrNoGateway) {
				return err
			}
			continue
		}
		turns = append(next, engine.ChatTurn{From: engine.ChatAI, Text: replyText(reply)})
	}
}

// replyText is what the assistant turn records in history. A reply that only
// created tasks is remembered by its confirmations.
func replyText(reply engine.ChatReply) string {
	if strings.TrimSpace(reply.Text) != "" {
		return reply.Text
	}
	return strings.Join(reply.Confirmations(), "\n")
}

// chatTurn streams one reply to out. Gateway failures are shown as the
// standard apology and returned.
func chatTurn(ctx context.Context, svc *engine.Service, out io.Writer, turns []engine.ChatTurn) (engine.ChatReply, error) {
	fmt.Fprint(out, ui.Title.Render("pulse> "))
	reply, err := svc.Chat(ctx, turns, func(text string) {
		fmt.Fprint(out, text)
	})
	fmt.Fprintln(out)
	if err != nil {
		if errors.Is(err, engine.ErrNoGateway) {
			return reply, err
		}
		fmt.Fprintln(out, ui.Bad.Render(ai.ChatErrorMessage))
		return reply, err
	}
	for _, c := range reply.Confirmations() {
		fmt.Fprintln(out, ui.Good.Render(c))
	}
	return reply, nil
}
