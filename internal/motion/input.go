package motion

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// Input is an uploaded video written to a temporary file so the decoder can
// open it by path.
type Input struct {
	path string
}

func NewInput(r io.Reader, dir string) (*Input, error) {
	tmp, err := os.CreateTemp(dir, "motion-*.mp4")
	if err != nil {
		return nil, storageError(err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, storageError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, storageError(err)
	}

	return &Input{path: tmp.Name()}, nil
}

func (i *Input) Path() string {
	return i.path
}

// Close removes the temporary file. Removing it twice is not an error.
func (i *Input) Close() error {
	if err := os.Remove(i.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
