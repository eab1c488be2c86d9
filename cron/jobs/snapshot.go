package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	specialRepo "kms.GO/model/repository/special"
	specialService "kms.GO/service/special"
)

// SnapshotJob exports the whole catalog to a timestamped workbook under
// SNAPSHOT_DIR. Reads env directly so the config package can list this job
// without an import cycle.
func SnapshotJob(args ...string) {
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "data/specials.json"
	}
	dir := os.Getenv("SNAPSHOT_DIR")
	if dir == "" {
		dir = "data/snapshots"
	}

	repo := specialRepo.NewSpecialRepository(dataFile)
	specials, err := repo.ReadAll()
	if err != nil {
		log.Printf("snapshot: read store: %v", err)
		return
	}
	export, err := specialService.ExportSpecials(specials, specialService.FormatXLSX)
	if err != nil {
		log.Printf("snapshot: build workbook: %v", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("snapshot: create dir: %v", err)
		return
	}
	name := fmt.Sprintf("specials-snapshot-%s.xlsx", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, export.Data, 0o644); err != nil {
		log.Printf("snapshot: write file: %v", err)
		return
	}
	log.Printf("snapshot: wrote %d specials to %s", len(specials), path)
}
