package bellybutton

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// sniffLen is the longest signature we look for.
const sniffLen = 6

var byteCodeSigs = []struct {
	DataType
	Sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// zlibLevels are the FLG bytes that follow a 0x78 CMF for the four
// compression levels.
var zlibLevels = []byte{0x01, 0x5e, 0x9c, 0xda}

// DetectDataType attempts to detect the data type of a stream from its first
// bytes by checking against a set of known signatures. Byte code signatures
// from https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	if len(head) == 0 {
		return DataTypeInvalid
	}

	for _, known := range byteCodeSigs {
		if bytes.HasPrefix(head, known.Sig) {
			return known.DataType
		}
	}

	// zlib has no fixed magic. Only the headers written by common encoders
	// (32K window, deflate, no preset dictionary) are recognized.
	if len(head) >= 2 && head[0] == 0x78 {
		for _, flg := range zlibLevels {
			if head[1] == flg {
				return DataTypeZlib
			}
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the start of r and, if it recognizes a
// compressed container, returns a reader over the decompressed content.
// Otherwise the (buffered) original content is returned. Closing the result
// does not close r.
func MaybeDecompressReadCloser(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch DetectDataType(head) {
	case DataTypeGzip:
		return gzip.NewReader(br)
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// Only the first entry of the archive is read
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(br)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZlib:
		if zlibPlausible(br) {
			return zlib.NewReader(br)
		}
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &readCloserFaker{br}, nil
}

// zlibPlausible decodes the start of the buffered content to rule out plain
// text that merely begins with a zlib header. The reader is not advanced.
func zlibPlausible(br *bufio.Reader) bool {
	head, _ := br.Peek(br.Size())

	zr, err := zlib.NewReader(bytes.NewReader(head))
	if err != nil {
		return false
	}

	_, err = zr.Read(make([]byte, 1))
	var corrupt flate.CorruptInputError
	return !errors.As(err, &corrupt)
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
