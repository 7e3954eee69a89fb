package main

import (
	"fmt"
	"os"
	"strings"

	"simpleblog/service"

	"github.com/fatih/color"
)

const CliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("simpleblog version %s\n", CliVersion)
	case "serve":
		if code := service.RunAppServer(os.Stdout, os.Stderr); code != 0 {
			exit(code)
		}
	case "routes":
		if err := service.PrintRoutes(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("routes: %v", err))
			exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	bold := color.New(color.Bold).SprintFunc()
	cmd := color.New(color.FgCyan).SprintFunc()

	fmt.Printf(`%s simpleblog <command>

%s
  %s       Display this help message.
  %s    Show version information.
  %s      Run the blog API until interrupted.
  %s     List the HTTP routes.

%s
  HTTP_HOST, HTTP_PORT (8000), STORAGE_TYPE (memory|badger),
  LOG_LEVEL (info), LOG_FORMAT (text|json), SHUTDOWN_TIMEOUT_SECONDS (10).
  A .env file in the working directory is loaded when present.
`,
		bold("Usage:"),
		bold("Commands:"),
		cmd("help"), cmd("version"), cmd("serve"), cmd("routes"),
		bold("Environment:"),
	)
}
