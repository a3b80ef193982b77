package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/solidcopy/readtags/internal/handler"
	"github.com/solidcopy/readtags/internal/tracklist"
)

// Printer writes one tracklist line per readable audio file to Out and
// reports everything else through Logger.
type Printer struct {
	Reader handler.FileHandler
	Out    io.Writer
	Logger *slog.Logger
}

func NewPrinter(reader handler.FileHandler, out io.Writer, logger *slog.Logger) *Printer {
	return &Printer{Reader: reader, Out: out, Logger: logger}
}

// ExecutePrint processes a file or a directory. Unreadable files are logged
// and skipped; the only error returned is a failed write to Out.
func (p *Printer) ExecutePrint(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return p.printDirectory(path)
	}
	return p.printFile(path)
}

func (p *Printer) printDirectory(dir string) error {
	entries, err := ListEntries(dir)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Directory %q: %s", ShortenPath(dir), hidePath(err, dir)))
		return nil
	}

	for _, entry := range entries {
		if err := p.ExecutePrint(entry); err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) printFile(filePath string) error {
	shortPath := ShortenPath(filePath)

	track, err := p.Reader.ReadTrack(filePath)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("File %q: %s", shortPath, hidePath(err, filePath)))
		if info, statErr := os.Stat(filePath); statErr == nil && info.Mode().IsRegular() {
			p.Logger.Info(fmt.Sprintf("File %q: file type likely unsupported", shortPath))
		}
		return nil
	}

	fields, missing := tracklist.Normalize(track)
	if len(missing) > 0 {
		p.Logger.Warn(fmt.Sprintf("File %q: tags missing %s", shortPath, strings.Join(missing, ", ")))
	}

	if _, err := fmt.Fprintln(p.Out, tracklist.FormatLine(fields)); err != nil {
		return fmt.Errorf("failed to write tracklist line: %w", err)
	}

	return nil
}

// ShortenPath keeps only the base name so that logs do not carry full paths.
func ShortenPath(path string) string {
	return "…" + string(filepath.Separator) + filepath.Base(path)
}

// hidePath shortens the path carried by a *fs.PathError in the chain. Other
// text in the message is left as is.
func hidePath(err error, path string) string {
	message := err.Error()

	var pathErr *fs.PathError
	if path == "" || !errors.As(err, &pathErr) || pathErr.Path != path {
		return message
	}

	shortened := *pathErr
	shortened.Path = ShortenPath(path)
	return strings.Replace(message, pathErr.Error(), shortened.Error(), 1)
}
