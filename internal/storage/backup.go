package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/repository"
)

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// Dir is where backups are written. Empty means a "backups" directory
	// next to the database file.
	Dir string

	// Name is the file name without extension. Empty means a timestamp.
	Name string

	// Verify re-opens the written file and checks its integrity.
	Verify bool
}

// BackupInfo describes a written or listed backup file.
type BackupInfo struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Checksum string    `json:"checksum"`
	Decks    int       `json:"decks"`
	Matches  int       `json:"matches"`
}

// BackupDir returns the default backup directory for the database.
func (db *DB) BackupDir() string {
	return filepath.Join(filepath.Dir(db.path), "backups")
}

// Backup writes a consistent copy of the database with VACUUM INTO, which
// does not block writers. In-memory databases are supported as well.
func (db *DB) Backup(ctx context.Context, config *BackupConfig) (*BackupInfo, error) {
	if config == nil {
		config = &BackupConfig{Verify: true}
	}

	dir := config.Dir
	if dir == "" {
		dir = db.BackupDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := config.Name
	if name == "" {
		name = "backup_" + time.Now().Format("20060102_150405")
	}
	path := filepath.Join(dir, name+".db")

	if _, err := db.conn.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return nil, fmt.Errorf("failed to write backup %s: %w", path, err)
	}

	info, err := describeBackup(path)
	if err != nil {
		return nil, err
	}

	if config.Verify {
		if err := VerifyBackup(ctx, path, info); err != nil {
			_ = os.Remove(path)
			return nil, fmt.Errorf("backup verification failed: %w", err)
		}
	}

	return info, nil
}

// VerifyBackup opens a backup file, runs an integrity check and, when info is
// non-nil, records the number of decks and matches it holds.
func VerifyBackup(ctx context.Context, path string, info *BackupInfo) error {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open backup as database: %w", err)
	}
	defer conn.Close()

	var result string
	if err := conn.GetContext(ctx, &result, "PRAGMA integrity_check"); err != nil {
		return fmt.Errorf("failed to check backup integrity: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("backup integrity check reported %q", result)
	}

	decks, err := repository.NewDeckRepository(conn).Count(ctx)
	if err != nil {
		return fmt.Errorf("backup is missing tracker tables: %w", err)
	}
	matches, err := repository.NewMatchRepository(conn).Count(ctx)
	if err != nil {
		return fmt.Errorf("backup is missing tracker tables: %w", err)
	}

	if info != nil {
		info.Decks = decks
		info.Matches = matches
	}
	return nil
}

// ListBackups returns the .db files in dir, newest first. A missing
// directory yields an empty list.
func ListBackups(dir string) ([]*BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []*BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []*BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		info, err := describeBackup(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

func describeBackup(path string) (*BackupInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	checksum, err := fileChecksum(path)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum backup: %w", err)
	}

	return &BackupInfo{
		Path:     path,
		Name:     stat.Name(),
		Size:     stat.Size(),
		ModTime:  stat.ModTime(),
		Checksum: checksum,
	}, nil
}

// fileChecksum returns the hex SHA-256 of a file.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
