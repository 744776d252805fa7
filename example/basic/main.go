// Package main demonstrates basic usage of the modalprompt library.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/modalprompt"
)

func main() {
	host, err := modalprompt.NewTerminalHost()
	if err != nil {
		log.Fatal(err)
	}
	defer host.Close()

	fmt.Println("Basic Prompt Example")
	fmt.Println("Press Enter to confirm, Esc to cancel")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Println()

	ctx := context.Background()
	for {
		name, err := host.Ask(ctx, "What should we call the backup?", modalprompt.WithDefault("vault"))
		if err != nil {
			if errors.Is(err, modalprompt.ErrDismissed) {
				fmt.Println("Cancelled")
				continue
			}
			if errors.Is(err, modalprompt.ErrEOF) || errors.Is(err, modalprompt.ErrInterrupted) {
				fmt.Println("Goodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		if name == "exit" || name == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		fmt.Printf("Backup name: %s\n", name)
	}
}
