package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chartboard/internal/dashboard/models"

	"github.com/chzyer/readline"
)

// ============================================================
// Interactive Shell
// ============================================================

// Dashboard операции сервиса, которые нужны шеллу.
type Dashboard interface {
	Ask(ctx context.Context, question string) ([]models.Message, error)
	History(ctx context.Context) ([]models.Message, error)
	ClearChat(ctx context.Context) error
	Cards(ctx context.Context) ([]models.Card, error)
	Pin(ctx context.Context, messageID string) (models.Card, error)
	RenderCard(ctx context.Context, id, format string) ([]byte, error)
}

type ShellConfig struct {
	HistoryFile string
}

type Shell struct {
	dash Dashboard
	rl   *readline.Instance
	out  io.Writer

	// lastChart id последнего ответа со спекой, его сохраняет /save.
	lastChart string
}

var errQuit = errors.New("quit")

func NewShell(dash Dashboard, cfg ShellConfig) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mchart>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("/save"),
			readline.PcItem("/cards"),
			readline.PcItem("/render"),
			readline.PcItem("/history"),
			readline.PcItem("/clear"),
			readline.PcItem("/help"),
			readline.PcItem("/quit"),
		),
	})
	if err != nil {
		return nil, err
	}

	return &Shell{dash: dash, rl: rl, out: rl.Stdout()}, nil
}

// Run читает строки до /quit или EOF.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	fmt.Fprintln(s.out, "Ask for a chart in plain words, e.g. \"pie of sales by region\".")
	fmt.Fprintln(s.out, "Commands: /save, /cards, /render, /history, /clear, /help, /quit")
	fmt.Fprintln(s.out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		if err := s.Handle(ctx, line); err != nil {
			if err == errQuit {
				return nil
			}
			printError(s.out, err)
		}
	}
}

// Handle обрабатывает одну строку: команду или вопрос.
func (s *Shell) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "/") {
		return s.handleCommand(ctx, strings.Fields(line))
	}
	return s.handleQuestion(ctx, line)
}

func (s *Shell) handleQuestion(ctx context.Context, question string) error {
	added, err := s.dash.Ask(ctx, question)
	if err != nil {
		return err
	}

	for _, msg := range added {
		if msg.Role != models.RoleAssistant {
			continue
		}
		printMessage(s.out, msg)
		if msg.Spec != nil {
			s.lastChart = msg.ID
		}
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) handleCommand(ctx context.Context, parts []string) error {
	switch parts[0] {
	case "/quit", "/exit", "/q":
		return errQuit

	case "/help", "/h":
		s.printHelp()

	case "/save":
		id := s.lastChart
		if len(parts) > 1 {
			id = parts[1]
		}
		if id == "" {
			return errors.New("nothing to save yet, ask a question first")
		}
		card, err := s.dash.Pin(ctx, id)
		if err != nil {
			return err
		}
		okColor.Fprintf(s.out, "Pinned %q as %s\n", card.Title, card.ID)

	case "/cards":
		cards, err := s.dash.Cards(ctx)
		if err != nil {
			return err
		}
		printCards(s.out, cards)

	case "/render":
		if len(parts) < 3 {
			fmt.Fprintln(s.out, "Usage: /render <card-id> <file.svg|file.png|file.xlsx>")
			return nil
		}
		return s.renderCard(ctx, parts[1], parts[2])

	case "/history":
		messages, err := s.dash.History(ctx)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			fmt.Fprintln(s.out, "No messages yet.")
		}
		for _, msg := range messages {
			printMessage(s.out, msg)
		}

	case "/clear":
		if err := s.dash.ClearChat(ctx); err != nil {
			return err
		}
		s.lastChart = ""
		fmt.Fprintln(s.out, "Conversation cleared.")

	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", parts[0])
	}

	return nil
}

func (s *Shell) renderCard(ctx context.Context, id, path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	data, err := s.dash.RenderCard(ctx, id, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	okColor.Fprintf(s.out, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  /save [message-id]        - Pin the last chart (or the given one)")
	fmt.Fprintln(s.out, "  /cards                    - List pinned cards")
	fmt.Fprintln(s.out, "  /render <card-id> <file>  - Save a card as svg, png or xlsx")
	fmt.Fprintln(s.out, "  /history                  - Show the conversation")
	fmt.Fprintln(s.out, "  /clear                    - Clear the conversation")
	fmt.Fprintln(s.out, "  /quit                     - Exit")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Anything else is sent as a question.")
}
