package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blogicum/app/config"
	"blogicum/app/services"
)

var osExit = os.Exit

// HandleCommand runs a database or server subcommand and returns an exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		osExit(1)
		return 1
	}

	cmd := args[0]
	if cmd == "help" {
		printHelp()
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		osExit(1)
		return 1
	}

	force, rest := hasFlag(args[1:], "--force")
	switch cmd {
	case "serve":
		return RunAppServer(cfg)
	case "clean":
		return clean(cfg, force)
	case "init":
		return initDb(cfg)
	case "backup":
		return backup(cfg)
	case "restore":
		if len(rest) < 1 {
			fmt.Println("Error: backup file path required for restore")
			osExit(1)
			return 1
		}
		return restore(cfg, rest[0], force)
	case "createadmin":
		if len(rest) < 3 {
			fmt.Println("Error: createadmin requires <username> <email> <password>")
			osExit(1)
			return 1
		}
		return createAdmin(cfg, rest[0], rest[1], rest[2])
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		osExit(1)
		return 1
	}
}

func printHelp() {
	helpText := `Usage: blogicum <command> [options]

Commands:
  serve                                  Run the blog web service
  init                                   Initialize a new empty database
  clean [--force]                        Remove the database
  backup                                 Create a backup of the database
  restore <file> [--force]               Restore the database from a backup
  createadmin <username> <email> <pass>  Create a staff user
  version                                Show version information
  help                                   Display this help message

Settings are read from the environment or a .env file:
  ADDR, DB_PATH, BACKUP_DIR, SESSION_TTL, JWT_SECRET, ACCESS_TTL
`
	fmt.Println(helpText)
}

// clean removes the database.
func clean(cfg *config.Config, force bool) int {
	if !exists(cfg.DBPath) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !force && !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(cfg.DBPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(cfg *config.Config) int {
	if exists(cfg.DBPath) {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer store.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a timestamped backup into the backup directory.
func backup(cfg *config.Config) int {
	if !exists(cfg.DBPath) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of a backup.
func restore(cfg *config.Config, backupFile string, force bool) int {
	fi, err := os.Stat(backupFile)
	if err != nil {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if exists(cfg.DBPath) {
		if !force && !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.DBPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := store.Restore(f); err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}

// createAdmin registers a staff user who may manage categories and
// locations and delete any post.
func createAdmin(cfg *config.Config, username, email, password string) int {
	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	users := services.NewUserService(services.FromStore(store), time.Now)
	user, err := users.CreateAdmin(services.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		return 1
	}

	fmt.Printf("Admin %s created (id %d)\n", user.Username, user.ID)
	return 0
}
