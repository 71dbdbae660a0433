package storage

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DataFootprintBytes reports the on-disk size of the assistant's data
// artifacts: the sqlite record store (including its WAL sidecar files) and
// the corpus dataset. Missing paths count as zero so a fresh install reports
// an empty footprint. A dataset directory is summed recursively.
func DataFootprintBytes(databasePath, datasetPath string) (int64, error) {
	paths := []string{datasetPath}
	if databasePath != "" {
		// WAL mode leaves -wal and -shm files next to the database.
		paths = append(paths, databasePath, databasePath+"-wal", databasePath+"-shm")
	}

	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		n, err := pathSize(p)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func pathSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
