package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// copyToClipboard writes text to the system clipboard. Without a local
// clipboard (ssh sessions, headless boxes) it falls back to an OSC 52
// escape, which the terminal emulator applies on the user's side.
func copyToClipboard(text string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(os.Stderr); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
