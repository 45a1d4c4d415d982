package service

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogicum/app/config"
	"blogicum/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func mockStdin(input string, f func()) {
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r

	// Write input in a goroutine to avoid blocking
	go func() {
		w.Write([]byte(input))
		w.Close()
	}()

	f()

	os.Stdin = oldStdin
}

func setupTestConfig(t *testing.T) *config.Config {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		Addr:       "localhost:0",
		DBPath:     filepath.Join(tmpDir, "badger"),
		BackupDir:  filepath.Join(tmpDir, "backups"),
		SessionTTL: time.Hour,
		AccessTTL:  time.Minute,
	}
	oldLoad := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = oldLoad })
	return cfg
}

func TestHandleCommand(t *testing.T) {
	setupTestConfig(t)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: blogicum <command>",
			expectedExit:   1,
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedOutput: "createadmin <username> <email> <pass>",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedOutput: "Unknown command: unknown",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore", "--force"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "createadmin without password",
			args:           []string{"createadmin", "root", "root@example.com"},
			expectedOutput: "Error: createadmin requires",
			expectedExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode := 0
			oldOsExit := osExit
			defer func() { osExit = oldOsExit }()
			osExit = func(code int) {
				exitCode = code
				panic("exit")
			}

			output := captureOutput(func() {
				defer func() {
					if r := recover(); r != nil {
						if r != "exit" {
							panic(r)
						}
					}
				}()
				HandleCommand(tt.args)
			})

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestInitDb(t *testing.T) {
	cfg := setupTestConfig(t)

	t.Run("initialize new database", func(t *testing.T) {
		var code int
		output := captureOutput(func() { code = initDb(cfg) })

		assert.Equal(t, 0, code)
		assert.Contains(t, output, "Database initialized successfully")
		assert.DirExists(t, cfg.DBPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		var code int
		output := captureOutput(func() { code = initDb(cfg) })

		assert.Equal(t, 1, code)
		assert.Contains(t, output, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	cfg := setupTestConfig(t)

	t.Run("clean non-existent database", func(t *testing.T) {
		output := captureOutput(func() { clean(cfg, false) })
		assert.Contains(t, output, "Database is already clean")
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		captureOutput(func() { initDb(cfg) })
		require.DirExists(t, cfg.DBPath)

		var output string
		mockStdin("y\n", func() {
			output = captureOutput(func() { clean(cfg, false) })
		})

		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, cfg.DBPath)
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		captureOutput(func() { initDb(cfg) })
		require.DirExists(t, cfg.DBPath)

		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() { clean(cfg, false) })
		})

		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, cfg.DBPath)
	})

	t.Run("clean with force skips the prompt", func(t *testing.T) {
		require.DirExists(t, cfg.DBPath)

		output := captureOutput(func() {
			HandleCommand([]string{"clean", "--force"})
		})

		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, cfg.DBPath)
	})
}

func TestCreateAdmin(t *testing.T) {
	cfg := setupTestConfig(t)

	output := captureOutput(func() {
		assert.Equal(t, 0, createAdmin(cfg, "root", "root@example.com", "correct-horse"))
	})
	assert.Contains(t, output, "Admin root created")

	output = captureOutput(func() {
		assert.Equal(t, 1, createAdmin(cfg, "root", "other@example.com", "correct-horse"))
	})
	assert.Contains(t, output, "Failed to create admin")

	store, err := repositories.Open(cfg.DBPath)
	require.NoError(t, err)
	defer store.Close()
	user, err := store.Users.GetByUsername("root")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
}

func TestBackupAndRestore(t *testing.T) {
	cfg := setupTestConfig(t)

	t.Run("backup non-existent database", func(t *testing.T) {
		output := captureOutput(func() { backup(cfg) })
		assert.Contains(t, output, "No database exists to backup")
	})

	t.Run("restore non-existent backup", func(t *testing.T) {
		output := captureOutput(func() { restore(cfg, "nonexistent.db", true) })
		assert.Contains(t, output, "Backup file does not exist")
	})

	t.Run("restore empty backup", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0644))

		output := captureOutput(func() { restore(cfg, empty, true) })
		assert.Contains(t, output, "Backup file is empty")
	})

	var backupFile string
	t.Run("backup existing database", func(t *testing.T) {
		captureOutput(func() { createAdmin(cfg, "root", "root@example.com", "correct-horse") })

		output := captureOutput(func() { backup(cfg) })
		assert.Contains(t, output, "Database backed up successfully")

		files, err := filepath.Glob(filepath.Join(cfg.BackupDir, "backup_*.db"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		backupFile = files[0]
	})

	t.Run("restore with existing database - cancelled", func(t *testing.T) {
		require.NotEmpty(t, backupFile)

		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() { restore(cfg, backupFile, false) })
		})

		assert.Contains(t, output, "Operation cancelled")
	})

	t.Run("restore replaces the database", func(t *testing.T) {
		require.NotEmpty(t, backupFile)
		captureOutput(func() { clean(cfg, true) })

		output := captureOutput(func() { restore(cfg, backupFile, true) })
		assert.Contains(t, output, "Database restored successfully")

		store, err := repositories.Open(cfg.DBPath)
		require.NoError(t, err)
		defer store.Close()
		user, err := store.Users.GetByUsername("root")
		require.NoError(t, err)
		assert.True(t, user.IsStaff)
	})
}
