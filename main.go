package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/tail-tools/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "tail-tools <transcript.jsonl>",
		Short: "Follow the tool calls in an agent transcript",
		Long: `tail-tools renders the tool calls and results of an agent transcript
as cards, collapsing long output, and follows the file as it grows.

Settings come from flags, TAIL_TOOLS_* environment variables and
` + "`" + defaultConfigPath() + "`" + `, in that order.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd, cfgFile)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, closer, err := setupLogger(cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()
			log.Debug("starting", "path", args[0], "dump", cfg.Dump, "config", v.ConfigFileUsed())

			if cfg.Dump {
				return dump(cmd.OutOrStdout(), args[0], cfg)
			}
			return tail(args[0], cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+defaultConfigPath()+")")
	addConfigFlags(cmd.Flags())
	cmd.AddCommand(newExportCmd())
	return cmd
}

// dump prints every card once, unselected, at the configured width.
func dump(w io.Writer, path string, cfg config) error {
	msgs, err := parser.ReadTranscript(path)
	if err != nil {
		return err
	}
	m := initialModel(msgs, cfg, false)
	m.width = cfg.Width
	_, err = fmt.Fprintln(w, m.renderCards(m.clampWidth()))
	return err
}

// tail runs the TUI over path and follows appends until the user quits.
func tail(path string, cfg config) error {
	// Complete lines only; the watcher picks up a half-written last line
	// once it lands.
	msgs, offset, err := parser.ReadIncremental(path, 0)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	watcher := newTranscriptWatcher(path, msgs, offset, nil)
	go watcher.run()
	defer watcher.stop()

	m := initialModel(parser.LinkResults(slices.Clone(msgs)), cfg, termenv.HasDarkBackground())
	m.path = path
	m.watching = true
	m.tailSub = watcher.sub
	m.tailErrc = watcher.errc
	m.updatedAt = time.Now()
	if len(m.cards) > 0 {
		m.cursor = len(m.cards) - 1
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newExportCmd() *cobra.Command {
	var toClipboard bool
	cmd := &cobra.Command{
		Use:   "export <transcript.jsonl> [tool-call-id]",
		Short: "Print tool calls and results as JSON",
		Long: `export prints the clipboard text of every tool call and result in a
transcript, separated by blank lines. With a tool-call id, only the call
and result carrying that id are printed.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := parser.ReadTranscript(args[0])
			if err != nil {
				return err
			}
			var id string
			if len(args) == 2 {
				id = args[1]
			}
			texts := exportTexts(buildCards(msgs), id)
			if len(texts) == 0 {
				if id != "" {
					return fmt.Errorf("no tool call or result with id %q", id)
				}
				return fmt.Errorf("no tool calls in %s", args[0])
			}
			out := strings.Join(texts, "\n\n")
			if toClipboard {
				if err := copyToClipboard(out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "copied %s\n", formatSize(len(out)))
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	return cmd
}

// exportTexts collects the export text of call and result cards, keeping
// only those for id when it is set.
func exportTexts(cards []card, id string) []string {
	var texts []string
	for _, c := range cards {
		var cid string
		switch c.kind {
		case cardCall:
			cid = c.call.ID
		case cardResult:
			cid = c.result.ToolCallID
		default:
			continue
		}
		if id != "" && cid != id {
			continue
		}
		texts = append(texts, exportText(c))
	}
	return texts
}
