// main.go - Documentation metrics report tool
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Command defines the interface for all command implementations
type Command interface {
	// Name returns the command name
	Name() string
	// Description returns the command description
	Description() string
	// Execute runs the command with the given args
	Execute(ctx context.Context, args []string) error
}

// The set of available commands
var commands = []Command{
	&BuildCommand{},
	&ServeCommand{},
	&HelpCommand{},
}

func main() {
	flag.Parse()

	// Cancel the context on termination signals so long-running commands
	// (serve) can shut down cleanly
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "Received signal: %v\n", sig)
		cancel()
	}()

	args := flag.Args()
	name := "help"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	cmd := findCommand(name)
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.Execute(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func findCommand(name string) Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: docmetrics <command>")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-8s %s\n", cmd.Name(), cmd.Description())
	}
}
