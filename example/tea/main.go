// Package main shows a dialog drawn with Bubble Tea components.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/nao1215/modalprompt"
	"github.com/nao1215/modalprompt/teahost"
)

func main() {
	host := teahost.New(teahost.WithTheme(modalprompt.ThemeDark), teahost.WithWidth(50))

	d, err := modalprompt.New(host, modalprompt.ConsumerFunc(func(msg string) {
		fmt.Printf("Commit message:\n%s\n", msg)
	}), "Commit message",
		modalprompt.WithMultiLine(true),
		modalprompt.WithDefault("fix: "),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := host.Run(context.Background(), d); err != nil {
		log.Fatal(err)
	}
	if !d.Submitted() {
		fmt.Println("Cancelled")
	}
}
