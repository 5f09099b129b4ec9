package editor

import "os"

// Files is the byte-stream collaborator used by open and save.
type Files interface {
	ReadAll(path string) ([]byte, error)
	WriteAll(path string, data []byte) error
}

// OSFiles reads and writes the local filesystem.
type OSFiles struct{}

func (OSFiles) ReadAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFiles) WriteAll(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
