package selection

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/temirov/dirtree/internal/types"
)

const readChunkSize = 32 * 1024

// fileHandle lazily reads a selected local file.
type fileHandle struct {
	path string
	name string
	size int64
}

func newFileHandle(path string, entry fs.DirEntry) *fileHandle {
	handle := &fileHandle{path: path, name: entry.Name()}
	if info, infoError := entry.Info(); infoError == nil {
		handle.size = info.Size()
	}
	return handle
}

func (handle *fileHandle) Name() string {
	return handle.name
}

// Size is the size observed at selection time.
func (handle *fileHandle) Size() int64 {
	return handle.size
}

// Read reads the whole file, checking ctx between chunks.
//
// #nosec G304
func (handle *fileHandle) Read(ctx context.Context) ([]byte, error) {
	file, openError := os.Open(handle.path)
	if openError != nil {
		return nil, openError
	}
	defer file.Close()

	data := make([]byte, 0, handle.size)
	chunk := make([]byte, readChunkSize)
	for {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		bytesRead, readError := file.Read(chunk)
		data = append(data, chunk[:bytesRead]...)
		if readError == io.EOF {
			return data, nil
		}
		if readError != nil {
			return nil, readError
		}
	}
}

var _ types.ContentHandle = (*fileHandle)(nil)
