package bellybutton

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
)

type ReaderAtCloser interface {
	io.Reader
	io.ReaderAt
	io.Closer
}

// Decorates a Google Storage object handle with Read and ReadAt
type GSReaderAtCloser struct {
	*storage.ObjectHandle
	Context context.Context
	Reader  *storage.Reader
}

// Read satisfies io.Reader. The underlying object reader is opened lazily on
// the first call.
func (o *GSReaderAtCloser) Read(p []byte) (n int, err error) {
	if o.Reader == nil {
		o.Reader, err = o.NewReader(o.Context)
		if err != nil {
			return 0, err
		}
	}

	return o.Reader.Read(p)
}

// ReadAt satisfies io.ReaderAt. Note that this is dependent upon making p a
// buffer of the desired length to be read by NewRangeReader.
func (o *GSReaderAtCloser) ReadAt(p []byte, offset int64) (n int, err error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	return io.ReadFull(rdr, p)
}

// Close satisfies io.Closer. Range readers are closed after every ReadAt, so
// only the sequential reader (if any) needs closing here.
func (o *GSReaderAtCloser) Close() error {
	if o.Reader != nil {
		err := o.Reader.Close()
		o.Reader = nil
		return err
	}

	return nil
}
