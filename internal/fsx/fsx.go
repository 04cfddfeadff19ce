// Package fsx contains io/fs extensions.
package fsx

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// OpenFile is a wrapper for os.OpenFile that ensures that
// we're opening a file rather than a directory. If you are
// opening a directory, this func returns an *os.PathError
// error with Err set to syscall.EISDIR.
func OpenFile(pathname string) (fs.File, error) {
	return openWithFS(filesystem{}, pathname)
}

// openWithFS is like Open but with explicit file system argument.
func openWithFS(fs fs.FS, pathname string) (fs.File, error) {
	file, err := fs.Open(pathname)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &os.PathError{
			Op:   "openFile",
			Path: pathname,
			Err:  syscall.EISDIR,
		}
	}
	return file, nil
}

// filesystem is a private implementation of fs.FS.
type filesystem struct{}

// Open implements fs.FS.Open.
func (filesystem) Open(pathname string) (fs.File, error) {
	return os.Open(pathname)
}

// ErrFileTooLarge indicates that a file exceeds the maximum allowed size.
var ErrFileTooLarge = errors.New("fsx: file too large")

// ReadFileLimited reads the regular file at pathname, failing with
// [ErrFileTooLarge] when it is larger than maxSize bytes.
func ReadFileLimited(pathname string, maxSize int64) ([]byte, error) {
	file, err := OpenFile(pathname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// WriteFileAtomic writes data into a temporary file inside the
// directory of pathname and then renames it to pathname, such that
// readers never observe a partially written file.
func WriteFileAtomic(pathname string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(pathname)
	if dir == "" {
		dir = "."
	}
	temp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tempName := temp.Name()
	defer os.Remove(tempName) // no-op after a successful rename
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Chmod(perm); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}
	return os.Rename(tempName, pathname)
}

// WriteFileExclusive is like WriteFileAtomic but never replaces an
// existing file. It tries the names returned by next, in order, and
// stops at the first one that does not exist yet. The returned string
// is the path that was written. When next returns "", the candidates
// are exhausted and the error is fs.ErrExist.
func WriteFileExclusive(dir string, next func(idx int) string, data []byte, perm fs.FileMode) (string, error) {
	temp, err := os.CreateTemp(dir, ".artifact.tmp-*")
	if err != nil {
		return "", err
	}
	tempName := temp.Name()
	defer os.Remove(tempName) // the link keeps the data alive
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return "", err
	}
	if err := temp.Chmod(perm); err != nil {
		temp.Close()
		return "", err
	}
	if err := temp.Close(); err != nil {
		return "", err
	}
	for idx := 0; ; idx++ {
		name := next(idx)
		if name == "" {
			return "", fs.ErrExist
		}
		pathname := filepath.Join(dir, name)
		err := os.Link(tempName, pathname)
		if err == nil {
			return pathname, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
}
