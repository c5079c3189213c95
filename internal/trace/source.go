package trace

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// gzipMagic is the two-byte header of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

type dumpReader struct {
	io.Reader
	closers []io.Closer
}

func (d *dumpReader) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenDump opens a value change dump for reading. Simulators often write
// compressed dumps, so gzip streams are detected by their magic bytes and
// decompressed transparently. The caller must close the returned reader.
func OpenDump(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	br := bufio.NewReaderSize(file, 256*1024)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		file.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !bytes.Equal(head, gzipMagic) {
		return &dumpReader{Reader: br, closers: []io.Closer{file}}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return &dumpReader{Reader: zr, closers: []io.Closer{file, zr}}, nil
}
