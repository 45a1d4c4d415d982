package main

import (
	"fmt"
	"os"
	"strings"

	"blogicum/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args and exits with the command's status.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
		exit(0)
	case "version":
		fmt.Printf("blogicum version %s\n", CliVersion)
		exit(0)
	case "serve", "init", "clean", "backup", "restore", "createadmin":
		args := append([]string{cmd}, os.Args[2:]...)
		exit(service.HandleCommand(args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	fmt.Printf("blogicum %s\n\n", CliVersion)
	service.HandleCommand([]string{"help"})
}
