package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"chartboard/internal/chart/engine"
	chart "chartboard/internal/chart/models"
	"chartboard/internal/chart/render"
	"chartboard/internal/dashboard/models"

	"github.com/spf13/cobra"
)

// ============================================================
// chartctl Commands
// ============================================================

type options struct {
	server string
}

// NewRootCommand собирает дерево команд chartctl.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "chartctl",
		Short: "Compile, render and pin charts from the terminal",
		Long: `chartctl compiles chart specs locally and talks to the Chartboard
gateway for the chat and the pinned-chart dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("CHARTCTL_SERVER", "http://localhost:3000"), "Gateway URL")

	root.AddCommand(
		compileCmd(),
		renderCmd(),
		askCmd(opts),
		shellCmd(opts),
		cardsCmd(opts),
	)
	return root
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [spec.json]",
		Short: "Compile a chart spec and print the render plan as JSON",
		Long:  "Reads the spec from the file or, with no argument or \"-\", from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			plan, err := engine.Compile(spec)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"kind": plan.Kind(), "plan": plan})
		},
	}
}

func renderCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "render [spec.json]",
		Short: "Render a chart spec to svg, png or xlsx",
		Example: `  chartctl render sales.json -o sales.png
  cat sales.json | chartctl render --format svg > sales.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			if format == "" && output != "" {
				format = filepath.Ext(output)
				if len(format) > 0 {
					format = format[1:]
				}
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			plan, err := engine.Compile(spec)
			if err != nil {
				return err
			}
			data, err := render.Encode(plan, f)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			okColor.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s, %d bytes)\n", output, f, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: svg, png or xlsx (default from --output extension, else svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func askCmd(opts *options) *cobra.Command {
	var pin bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask for a chart and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(opts.server)
			ctx := cmd.Context()

			added, err := client.Ask(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, msg := range added {
				if msg.Role == models.RoleAssistant {
					printMessage(out, msg)
				}
				if pin && msg.Spec != nil {
					card, err := client.Pin(ctx, msg.ID)
					if err != nil {
						return err
					}
					okColor.Fprintf(out, "Pinned %q as %s\n", card.Title, card.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the generated chart to the dashboard")
	return cmd
}

func shellCmd(opts *options) *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive chat with the chart generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := NewShell(NewClient(opts.server), ShellConfig{HistoryFile: historyFile})
			if err != nil {
				return err
			}
			return sh.Run(cmd.Context())
		},
	}

	home, _ := os.UserHomeDir()
	cmd.Flags().StringVar(&historyFile, "history", filepath.Join(home, ".chartctl_history"), "Readline history file")
	return cmd
}

func cardsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List and manage pinned cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := NewClient(opts.server).Cards(cmd.Context())
			if err != nil {
				return err
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		},
	}

	var output string
	renderCard := &cobra.Command{
		Use:   "render <card-id>",
		Short: "Download a rendered card (format from --output extension)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &Shell{dash: NewClient(opts.server), out: cmd.OutOrStdout()}
			return sh.renderCard(cmd.Context(), args[0], output)
		},
	}
	renderCard.Flags().StringVarP(&output, "output", "o", "card.svg", "Output file")

	add := &cobra.Command{
		Use:   "add [spec.json]",
		Short: "Pin a spec file to the dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readSpec(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			card, err := NewClient(opts.server).PinSpec(cmd.Context(), spec)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Pinned %q as %s\n", card.Title, card.ID)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <card-id>",
		Short: "Unpin a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewClient(opts.server).RemoveCard(cmd.Context(), args[0])
		},
	}

	move := &cobra.Command{
		Use:   "move <card-id> <target-id>",
		Short: "Move a card to the position of another card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := NewClient(opts.server).MoveCard(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		},
	}

	resize := &cobra.Command{
		Use:   "resize <card-id> <columns>",
		Short: "Set the card width in grid columns (1-6)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("columns must be a number: %w", err)
			}
			card, err := NewClient(opts.server).UpdateCard(cmd.Context(), args[0], models.CardPatch{ColSpan: &span})
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "%s now spans %d columns\n", card.ID, card.Layout.ColSpan)
			return nil
		},
	}

	cmd.AddCommand(renderCard, add, rm, move, resize)
	return cmd
}

// Execute запускает chartctl с аргументами процесса.
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func readSpec(stdin io.Reader, args []string) (*chart.ChartSpec, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	var spec *chart.ChartSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	return spec, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
