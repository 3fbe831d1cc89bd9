package db

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN is the last-resort store when no file path is writable. Shared
// cache so every pooled connection sees the same database.
const MemoryDSN = "file:rvce_fee?mode=memory&cache=shared"

const dbFileName = "rvce_fee.db"

// ResolvePath picks the first writable database path among the explicit
// override, a temp-scoped copy (seeded from the project file when one is
// bundled), and the project-local file. On serverless platforms the project
// directory can be read-only, so temp is probed before it. Falls back to an
// in-memory DSN instead of failing. Call once at startup and inject the
// result; the resolution is not cached here.
func ResolvePath(override, projectPath string) string {
	if projectPath == "" {
		projectPath = dbFileName
	}
	tempPath := filepath.Join(os.TempDir(), dbFileName)

	candidates := make([]string, 0, 3)
	if override != "" {
		candidates = append(candidates, override)
	}
	candidates = append(candidates, tempPath, projectPath)

	for _, candidate := range candidates {
		parent := filepath.Dir(candidate)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				continue
			}
		}
		if candidate == tempPath {
			seedFromProject(projectPath, candidate)
		}
		file, err := os.OpenFile(candidate, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			continue
		}
		_ = file.Close()
		return candidate
	}
	return MemoryDSN
}

// seedFromProject copies the bundled project database to the temp candidate
// when the temp copy does not exist yet. Best effort.
func seedFromProject(projectPath, tempPath string) {
	if _, err := os.Stat(tempPath); err == nil {
		return
	}
	src, err := os.Open(projectPath)
	if err != nil {
		return
	}
	defer src.Close()
	dst, err := os.Create(tempPath)
	if err != nil {
		return
	}
	defer dst.Close()
	_, _ = io.Copy(dst, src)
}

func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// Single connection: SQLite has one writer, and the shared-cache memory
	// fallback misbehaves under a larger pool.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	// WAL is unsupported for in-memory databases; ignore failures.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if absent. Schema evolution is purely
// additive, so this is safe to run on every boot.
func InitSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS students (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  dept TEXT,
  email TEXT,
  year TEXT,
  password TEXT
);

CREATE TABLE IF NOT EXISTS pending_fees (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_name TEXT,
  department TEXT,
  fee_type TEXT,
  amount REAL,
  due_date TEXT,
  imported_by TEXT,
  created_at TEXT
);

CREATE TABLE IF NOT EXISTS user_profiles (
  role TEXT PRIMARY KEY,
  profile_picture TEXT,
  profile_name TEXT,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS server_metric_samples (
  id TEXT PRIMARY KEY,
  captured_at TIMESTAMP NOT NULL,
  heap_used_bytes INTEGER NOT NULL DEFAULT 0,
  heap_max_bytes INTEGER NOT NULL DEFAULT 0,
  system_memory_total_bytes INTEGER NOT NULL DEFAULT 0,
  system_memory_used_bytes INTEGER NOT NULL DEFAULT 0,
  disk_total_bytes INTEGER NOT NULL DEFAULT 0,
  disk_used_bytes INTEGER NOT NULL DEFAULT 0,
  process_cpu_load REAL NOT NULL DEFAULT 0,
  system_cpu_load REAL NOT NULL DEFAULT 0
);
`)
	return err
}
