package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const versionLayout = "20060102150405"

var migrationName = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

func main() {
	name := flag.String("name", "", "migration name in snake_case, e.g. add_sessions_index")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()

	upPath, downPath, err := scaffold(*dir, *name, time.Now().UTC())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("created %s and %s", upPath, downPath)
}

// scaffold writes an empty up/down pair named {version}_{name} into dir,
// the layout cmd/migrate reads.
func scaffold(dir, name string, now time.Time) (string, string, error) {
	if name == "" {
		return "", "", fmt.Errorf("migration name is required")
	}
	if !migrationName.MatchString(name) {
		return "", "", fmt.Errorf("migration name %q must be lowercase snake_case", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create migrations dir: %w", err)
	}

	base := now.Format(versionLayout) + "_" + name
	upPath := filepath.Join(dir, base+".up.sql")
	downPath := filepath.Join(dir, base+".down.sql")

	if err := writeNew(upPath, "-- "+name+": apply\n"); err != nil {
		return "", "", fmt.Errorf("create up migration: %w", err)
	}
	if err := writeNew(downPath, "-- "+name+": revert\n"); err != nil {
		_ = os.Remove(upPath)
		return "", "", fmt.Errorf("create down migration: %w", err)
	}
	return upPath, downPath, nil
}

func writeNew(path, content string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
