// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

const defaultOutputMode fs.FileMode = 0644

// 💾 atomicFile buffers writes into a temporary file in the destination
// directory. Nothing is visible at the destination until Commit.
type atomicFile struct {
	path string
	tmp  *os.File
	buf  *bufio.Writer
	done bool
}

func createAtomic(path string) (*atomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, errors.Errorf("creating temp file: %w", err)
	}

	return &atomicFile{
		path: path,
		tmp:  tmp,
		buf:  bufio.NewWriter(tmp),
	}, nil
}

// WriteLine writes line followed by "\n".
func (a *atomicFile) WriteLine(line string) error {
	if _, err := a.buf.WriteString(line); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := a.buf.WriteByte('\n'); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	return nil
}

// Commit flushes the temporary file and renames it over the destination.
// An existing destination keeps its permissions.
func (a *atomicFile) Commit() error {
	if err := a.buf.Flush(); err != nil {
		return errors.Errorf("flushing temp file: %w", err)
	}

	mode := defaultOutputMode
	if info, err := os.Stat(a.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := a.tmp.Chmod(mode); err != nil {
		return errors.Errorf("setting output permissions: %w", err)
	}

	if err := a.tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(a.tmp.Name(), a.path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	a.done = true
	return nil
}

// Discard removes the temporary file. It is a no-op after Commit.
func (a *atomicFile) Discard() {
	if a.done {
		return
	}
	a.done = true
	_ = a.tmp.Close()
	_ = os.Remove(a.tmp.Name())
}
