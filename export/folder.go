package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFolder is the export directory used when none is configured.
var DefaultFolder = filepath.Join("~", "Documents", "PLN-ODINSA", "Matrices")

// Folder copies spreadsheets into a local directory.
type Folder struct {
	dir    string
	logger *slog.Logger
}

// NewFolder creates an exporter for dir. A leading "~" is expanded to the
// user's home directory.
func NewFolder(dir string, logger *slog.Logger) (*Folder, error) {
	if dir == "" {
		dir = DefaultFolder
	}
	expanded, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Folder{dir: expanded, logger: logger}, nil
}

// Dir returns the export directory
func (f *Folder) Dir() string {
	return f.dir
}

// Export implements Exporter. The directory is created when missing, and
// the copy keeps the source's permissions and modification time.
func (f *Folder) Export(ctx context.Context, key, src string, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export folder: %w", err)
	}

	dest := filepath.Join(f.dir, FileName(key, at))
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		renamed := filepath.Join(f.dir, CollisionName(key, at))
		f.logger.Warn("Export file already exists; renaming.", "path", dest, "renamed", filepath.Base(renamed))
		dest = renamed
		out, err = os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}

	if err := copyInto(out, src); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

func copyInto(out *os.File, src string) error {
	in, err := os.Open(src)
	if err != nil {
		out.Close()
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("finalize copy: %w", err)
	}

	info, err := in.Stat()
	if err != nil {
		return nil
	}
	_ = os.Chmod(out.Name(), info.Mode().Perm())
	_ = os.Chtimes(out.Name(), info.ModTime(), info.ModTime())
	return nil
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
