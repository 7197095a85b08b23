// Package corpus reads a directory of dated markdown notes.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/ingest"
)

// ErrBadFilename is returned when a filename does not start with a date.
var ErrBadFilename = errors.New("filename has no leading YYYY-MM-DD date")

// dateLayout accepts one- or two-digit month and day.
const dateLayout = "2006-1-2"

const sectionSep = "\n## "

// Dir is a non-recursive directory of *.md notes named "YYYY-MM-DD-...".
type Dir struct {
	Path string
	// OnSkip is called for every file that is not handed to the callback.
	// err wraps ErrBadFilename or the read error.
	OnSkip func(path string, err error)
	Logger *slog.Logger
}

// ParseDate reads the date from the first three "-"-separated fields of a
// file name. The extension is ignored, so "2024-05-12.md" is accepted.
func ParseDate(name string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.SplitN(base, "-", 4)
	if len(parts) < 3 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrBadFilename, name)
	}
	t, err := time.Parse(dateLayout, strings.Join(parts[:3], "-"))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrBadFilename, name, err)
	}
	return t, nil
}

// ExtractBody keeps the sections after each second-level heading marker and
// drops the preamble. A heading on the first line starts a section. Content
// without "##" is returned whole.
func ExtractBody(content string) string {
	if !strings.Contains(content, "##") {
		return content
	}
	sections := strings.Split("\n"+content, sectionSep)
	return strings.Join(sections[1:], " ")
}

// Files lists the *.md files of the directory, sorted by name.
func (d *Dir) Files() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", d.Path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(d.Path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Walk calls fn for every dated note in name order. Undated or unreadable
// files are logged, reported to OnSkip and skipped. An error from fn or a
// cancelled ctx stops the walk.
func (d *Dir) Walk(ctx context.Context, fn func(ingest.Doc) error) error {
	files, err := d.Files()
	if err != nil {
		return err
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		date, err := ParseDate(path)
		if err != nil {
			log.Warn("skipping file", "path", path, "error", err)
			d.skip(path, err)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("read file %s: %w", path, err)
			log.Warn("skipping file", "path", path, "error", err)
			d.skip(path, err)
			continue
		}

		doc := ingest.Doc{
			Path:        path,
			Month:       ingest.MonthKey(date),
			PublishedAt: date,
			Body:        ExtractBody(string(data)),
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dir) skip(path string, err error) {
	if d.OnSkip != nil {
		d.OnSkip(path, err)
	}
}
