package interfaces

import "context"

// BackendInterface stores one opaque snapshot blob. Read returns nil, nil when
// nothing has been stored yet.
type BackendInterface interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}
