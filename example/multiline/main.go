// Package main demonstrates multi-line dialogs and the Submit control.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nao1215/modalprompt"
)

func main() {
	platform := modalprompt.DetectPlatform(os.LookupEnv)

	fmt.Println("Multiline Input Example")
	fmt.Printf("Platform: %s\n", platform)
	if platform == modalprompt.PlatformTouch {
		fmt.Println("  - Enter is ignored, Tab to the Submit button and press Enter")
	} else {
		fmt.Println("  - Shift+Enter (or Alt+Enter) inserts a newline")
		fmt.Println("  - Enter or the Submit button confirms")
	}
	fmt.Println("  - Esc cancels")
	fmt.Println()

	host, err := modalprompt.NewTerminalHost()
	if err != nil {
		log.Fatal(err)
	}
	defer host.Close()

	d, err := modalprompt.New(host, modalprompt.ConsumerFunc(func(note string) {
		fmt.Println("\n--- Your note ---")
		lines := strings.Split(note, "\n")
		for i, line := range lines {
			fmt.Printf("%3d: %s\n", i+1, line)
		}
		fmt.Printf("\nTotal lines: %d\n", len(lines))
		fmt.Printf("Total characters: %d\n", len([]rune(note)))
		fmt.Println("--- End of note ---")
	}), "Release notes",
		modalprompt.WithMultiLine(true),
		modalprompt.WithPlatform(platform),
		modalprompt.WithPlaceholder("What changed?"),
		modalprompt.WithSubmitLabel("Save"),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := host.Run(context.Background(), d); err != nil {
		if errors.Is(err, modalprompt.ErrInterrupted) || errors.Is(err, modalprompt.ErrEOF) {
			fmt.Println("Goodbye!")
			return
		}
		log.Fatal(err)
	}
	if !d.Submitted() {
		fmt.Println("Cancelled")
	}
}
