package waitfor

import (
	"fmt"
	"os"
	"time"
)

// ExistsCondition is met while a filesystem entry exists, or, negated,
// while it does not. A stat error (permission denied, unreachable mount)
// counts as absent.
type ExistsCondition struct {
	Path string
	not  bool
}

// Exists returns a condition met while path exists on the filesystem.
func Exists(path string, not bool) *ExistsCondition {
	return &ExistsCondition{Path: path, not: not}
}

func (c *ExistsCondition) Met() bool {
	_, err := os.Stat(c.Path)
	raw := err == nil

	return raw != c.not
}

func (c *ExistsCondition) String() string {
	if c.not {
		return fmt.Sprintf("file %q absent", c.Path)
	}
	return fmt.Sprintf("file %q present", c.Path)
}

// fileStamp is the metadata snapshot FileUpdated compares against.
type fileStamp struct {
	exists bool
	mtime  time.Time
	size   int64
}

func stampFile(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, mtime: info.ModTime(), size: info.Size()}
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.exists == o.exists && s.mtime.Equal(o.mtime) && s.size == o.size
}

// FileUpdatedCondition is met once the file's modification time or size
// differs from the baseline captured when the condition was built. A file
// that was missing at construction and exists now counts as updated, as
// does a file that existed and has since been deleted; a file that is still
// missing does not.
type FileUpdatedCondition struct {
	Path     string
	baseline fileStamp
	not      bool
}

// FileUpdated captures the file's current (mtime, size) baseline and
// returns a condition met once either changes. Negated, it is met while the
// file stays exactly as it was. The baseline is taken here, not on the
// first check.
func FileUpdated(path string, not bool) *FileUpdatedCondition {
	return &FileUpdatedCondition{Path: path, baseline: stampFile(path), not: not}
}

func (c *FileUpdatedCondition) Met() bool {
	raw := !stampFile(c.Path).equal(c.baseline)
	return raw != c.not
}

func (c *FileUpdatedCondition) String() string {
	if c.not {
		return fmt.Sprintf("file %q unchanged", c.Path)
	}
	return fmt.Sprintf("file %q updated", c.Path)
}

// UpdatedWithinCondition is met while the file was modified within the
// trailing window. Negated, it is met once the file has been quiet for at
// least the window. A stat failure counts as not recently updated.
type UpdatedWithinCondition struct {
	Path   string
	Window time.Duration
	not    bool
}

// UpdatedWithin returns a condition met while path's modification time is
// newer than window ago. The negated form is the usual way to wait for a
// file to stop being written to.
func UpdatedWithin(path string, window time.Duration, not bool) *UpdatedWithinCondition {
	return &UpdatedWithinCondition{Path: path, Window: window, not: not}
}

func (c *UpdatedWithinCondition) Met() bool {
	info, err := os.Stat(c.Path)
	raw := err == nil && time.Since(info.ModTime()) < c.Window

	return raw != c.not
}

func (c *UpdatedWithinCondition) String() string {
	if c.not {
		return fmt.Sprintf("file %q quiet for %s", c.Path, c.Window)
	}
	return fmt.Sprintf("file %q modified within %s", c.Path, c.Window)
}
