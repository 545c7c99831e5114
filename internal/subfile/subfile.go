// Package subfile moves subtitle text between disk and memory. It reads
// UTF-8 with or without a byte order mark and writes atomically.
package subfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// interface for file access used by the processor and commands
type FileSystem interface {
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string) error
	ReadContent(path string) (string, error)
	WriteContent(path, content string) error
	Exists(path string) bool
	Copy(src, dst string) error
}

// OS is the FileSystem backed by the real disk.
type OS struct{}

func (OS) ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(decoder(file))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitle file: %w", err)
	}
	return lines, nil
}

func (OS) ReadContent(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(decoder(file))
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return string(data), nil
}

// WriteLines writes one line per element, each terminated by a newline.
func (fs OS) WriteLines(path string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return fs.WriteContent(path, sb.String())
}

// WriteContent replaces path through a sibling temp file and rename.
func (OS) WriteContent(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	tmp := filepath.Join(
		filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()),
	)
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Copy overwrites dst with the bytes of src.
func (OS) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// BackupPath is where Backup keeps the previous version of path.
func BackupPath(path, suffix string) string {
	return path + suffix
}

// Backup copies path next to itself, replacing an older backup.
func Backup(fs FileSystem, path, suffix string) (string, error) {
	dst := BackupPath(path, suffix)
	if err := fs.Copy(path, dst); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return dst, nil
}

var ErrLocked = errors.New("subtitle file is being modified by another process")

// Lock takes an exclusive advisory lock on path for a read-modify-write
// cycle. The returned func releases it. The ".lock" file stays on disk
// so every process locks the same inode.
func Lock(path string) (func(), error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}

// strips a leading UTF-8 BOM, otherwise passes bytes through
func decoder(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
