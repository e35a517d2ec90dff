// Package repo provides repository initialisation and discovery for vers.
//
// A vers repository is a .vers directory containing a SQLite database. This
// package handles:
//   - Initialising new repositories (creating .vers/ and the database)
//   - Discovering existing repositories by walking up the directory tree
//   - Managing multiple named databases (vers.db, vers-drafts.db, ...)
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .vers directory containing the target database
// is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caldera-cms/vers/internal/store"
)

const (
	// Dir is the directory name for the vers repository.
	Dir = ".vers"
	// DBFile is the default database filename.
	DBFile = "vers.db"
)

// ErrNotInitialised is returned when no vers repository is found.
var ErrNotInitialised = errors.New("vers not initialised (run 'vers init')")

// DBFileName returns the database filename for a given name.
// Empty name returns the default "vers.db".
// A name like "drafts" returns "vers-drafts.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "vers-" + name + ".db"
}

// Init initialises a new vers repository.
//
// Parameters:
//   - force: reinitialise an existing repository
//   - db: database name (empty for default "vers.db")
//   - dir: target directory (empty for current directory)
func Init(force bool, db, dir string) error {
	if dir == "" {
		dir = "."
	}
	versDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(versDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(versDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", versDir, err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("initialise schema: %w", err)
	}
	return nil
}

// Discover locates the database by walking up from the current directory.
// The db parameter selects a named database (empty for default).
// Returns ErrNotInitialised when no repository is found.
func Discover(db string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	file := DBFileName(db)
	for {
		candidate := filepath.Join(dir, Dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
