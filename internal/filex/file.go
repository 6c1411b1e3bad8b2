package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadOrCreate returns the contents of the file at path. If the file does
// not exist, generate is called, its result is written to path with the
// given mode, and that result is returned.
func ReadOrCreate(path string, mode os.FileMode, generate func() ([]byte, error)) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data, err = generate()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return data, nil
}
