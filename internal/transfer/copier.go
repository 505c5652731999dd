// Package transfer copies marked files into a destination directory.
package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"browsed/internal/errors"
	"browsed/internal/log"
	"browsed/pkg/types"
)

// Copier copies files best-effort: a failure on one file never stops the
// rest of the batch, and existing destination files are never overwritten.
type Copier struct {
	logger *log.Logger
}

// New creates a Copier that reports failures through logger. A nil logger
// uses the package default.
func New(logger *log.Logger) *Copier {
	if logger == nil {
		logger = log.Default()
	}
	return &Copier{logger: logger}
}

// CopyFiles copies each source to destDir/<name>, returning one result per
// source in input order.
func (c *Copier) CopyFiles(sources []string, destDir string) []types.CopyResult {
	results := make([]types.CopyResult, 0, len(sources))

	dirErr := checkDestination(destDir)
	for _, src := range sources {
		dest := filepath.Join(destDir, filepath.Base(src))
		r := types.CopyResult{SourcePath: src, DestinationPath: dest}

		if dirErr != nil {
			r.Error = errors.NewCopyError("destination unavailable", src, dest, dirErr)
		} else {
			r.Bytes, r.Error = c.CopyFile(src, dest)
		}
		r.Copied = r.Error == nil

		if r.Error != nil {
			c.logger.WithError(r.Error).Error("copy failed")
		} else {
			c.logger.With(log.F("source", src), log.F("destination", dest), log.F("bytes", r.Bytes)).Debug("copied file")
		}
		results = append(results, r)
	}

	return results
}

// CopyFile copies one regular file to dest, which must not exist. On failure
// any partially written destination is removed.
func (c *Copier) CopyFile(src, dest string) (int64, error) {
	cleanSrc := filepath.Clean(src)
	cleanDest := filepath.Clean(dest)

	srcInfo, err := os.Stat(cleanSrc)
	if err != nil {
		return 0, errors.NewCopyError("source unavailable", src, dest, err)
	}
	if srcInfo.IsDir() {
		return 0, errors.NewCopyError("cannot copy directory as file", src, dest, nil)
	}

	in, err := os.Open(cleanSrc)
	if err != nil {
		return 0, errors.NewCopyError("cannot open source", src, dest, err)
	}
	defer in.Close()

	out, err := os.OpenFile(cleanDest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return 0, errors.NewCopyError("name collision", src, dest, errors.ErrNameCollision)
		}
		return 0, errors.NewCopyError("cannot create destination", src, dest, err)
	}

	n, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(cleanDest); rmErr != nil {
			c.logger.With(log.F("path", cleanDest)).Warnf("failed to remove partial copy: %v", rmErr)
		}
		return 0, errors.NewCopyError("write failed", src, dest, err)
	}

	return n, nil
}

func checkDestination(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
