package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Schema steps ship inside the binary so a fresh focusgrid database can
// be created wherever the program first runs. The NNNN_ file prefix
// fixes the order.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// MigrateUp applies every .up.sql step, oldest first.
func MigrateUp(db *sql.DB) error {
	return runSchemaSteps(db, ".up.sql", false)
}

// MigrateDown unwinds the schema with the .down.sql steps, newest first.
func MigrateDown(db *sql.DB) error {
	return runSchemaSteps(db, ".down.sql", true)
}

func runSchemaSteps(db *sql.DB, suffix string, newestFirst bool) error {
	steps, err := fs.Glob(schemaFS, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("list schema steps: %w", err)
	}
	sort.Strings(steps)
	if newestFirst {
		for left, right := 0, len(steps)-1; left < right; left, right = left+1, right-1 {
			steps[left], steps[right] = steps[right], steps[left]
		}
	}
	for _, step := range steps {
		script, err := schemaFS.ReadFile(step)
		if err != nil {
			return fmt.Errorf("read schema step %s: %w", step, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("run schema step %s: %w", step, err)
		}
	}
	return nil
}
