// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemprot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// maxLineSize bounds a single record. Abstract lines run to a few KB.
const maxLineSize = 16 << 20

// xzSource closes the underlying file of an xz stream.
type xzSource struct {
	*xz.Reader
	f *os.File
}

func (s xzSource) Close() error { return s.f.Close() }

// openSource opens path for reading, decompressing .xz files.
func openSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if !strings.HasSuffix(path, suffixXZ) {
		return f, nil
	}
	xr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading xz stream %s: %w", path, err)
	}
	return xzSource{Reader: xr, f: f}, nil
}

// scanFile calls fn with the 1-based number and content of every
// non-blank line in path. The file is closed before scanFile returns.
func scanFile(path string, fn func(lineNo int, line string)) error {
	r, err := openSource(path)
	if err != nil {
		return err
	}
	defer r.Close()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(lineNo, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
