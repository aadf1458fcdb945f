package persistence

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"

	"fittrack/internal/persistence/interfaces"
	"fittrack/internal/structures"
)

func NewBackend(conf *structures.Config) (interfaces.BackendInterface, error) {
	p := conf.Persistence
	switch p.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     p.Redis.Addr,
			Password: p.Redis.Password,
			DB:       p.Redis.DB,
		})
		return NewRedisBackend(client, p.Redis.Key), nil
	case "file", "":
		return NewFileBackend(p.FilePath), nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", p.Driver)
	}
}

// FileBackend writes the snapshot next to its destination first and renames
// it into place, so a crash never leaves a truncated file behind.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Name() string {
	return "file " + f.path
}

func (f *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (f *FileBackend) Write(_ context.Context, data []byte) error {
	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileBackend) Close() error {
	return nil
}
