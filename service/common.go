package service

import (
	"fmt"
	"os"

	"blogicum/app/config"
	"blogicum/app/repositories"
)

// loadConfig is a variable so tests can point commands at a temporary
// database.
var loadConfig = func() (*config.Config, error) {
	return config.Load()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// confirm asks a yes/no question on stdin; anything but y/Y is a no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// hasFlag reports whether flag is present and returns args without it.
func hasFlag(args []string, flag string) (bool, []string) {
	found := false
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == flag {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}

func openStore(cfg *config.Config) (*repositories.Store, error) {
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return repositories.Open(cfg.DBPath)
}
