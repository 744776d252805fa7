// Package main demonstrates history recall in single-line dialogs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/modalprompt"
)

func main() {
	fmt.Println("History Example with File Persistence")
	fmt.Println("Use Up/Down arrow keys to recall earlier answers")
	fmt.Println("Type 'history' to see the history")
	fmt.Println("Type 'clear' to clear history")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Printf("History is saved to %s\n", modalprompt.DefaultHistoryFile())
	fmt.Println()

	// History is loaded when the host is created and saved when it closes.
	// The file path may be absolute, start with "~/", or be relative.
	history := modalprompt.NewHistory(modalprompt.HistoryConfig{
		File:       modalprompt.DefaultHistoryFile(),
		MaxEntries: 1000,
	})
	host, err := modalprompt.NewTerminalHost(modalprompt.WithHistory(history))
	if err != nil {
		log.Fatal(err)
	}
	defer host.Close()

	ctx := context.Background()
	for {
		result, err := host.Ask(ctx, "Command")
		if err != nil {
			if errors.Is(err, modalprompt.ErrDismissed) {
				continue
			}
			if errors.Is(err, modalprompt.ErrEOF) || errors.Is(err, modalprompt.ErrInterrupted) {
				fmt.Println("Goodbye!")
				return
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		switch strings.TrimSpace(result) {
		case "":
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "history":
			fmt.Println("History:")
			for i, entry := range history.Entries() {
				fmt.Printf("  %3d: %s\n", i+1, entry)
			}
		case "clear":
			history.Clear()
			fmt.Println("History cleared")
		default:
			fmt.Printf("Executed: %s\n", result)
		}
	}
}
