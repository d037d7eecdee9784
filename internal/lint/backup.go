package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
)

// sessionWindow is the 10-minute window from spec.md §6.3 within which
// consecutive fixes to the same file are treated as one editing session.
const sessionWindow = 10 * time.Minute

// backupPaths returns the `.orig`/`.bak`/`.fixed-hash` sibling paths for
// `<dir>/<name>.omt`, per spec.md §6.3's exact naming.
func backupPaths(path string) (orig, bak, fixedHash string) {
	dir, name := filepath.Split(path)
	base := filepath.Join(dir, "."+name)
	return base + ".orig", base + ".bak", base + ".fixed-hash"
}

// contentHash returns the full hex-encoded blake2b-256 digest of data,
// used for backup-equality comparisons (spec.md §6.3: "backup equality
// uses the full digest").
func contentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// applyBackupPolicy implements spec.md §6.3's session policy for one
// fix being applied to path, given the pre-fix content and the content
// about to be written. It must run before the fixed content overwrites
// the source file.
func applyBackupPolicy(fs afero.Fs, path string, preFixContent, fixedContent []byte, now time.Time) error {
	origPath, bakPath, fixedHashPath := backupPaths(path)

	origExists, err := afero.Exists(fs, origPath)
	if err != nil {
		return fmt.Errorf("checking %s: %w", origPath, err)
	}

	if !origExists {
		if err := writeWithTimestamp(fs, origPath, preFixContent, now); err != nil {
			return err
		}
	} else if withinSessionWindow(fs, origPath, now) {
		// leave .orig untouched
	} else {
		storedHash, err := afero.ReadFile(fs, fixedHashPath)
		if err != nil && !isNotExist(err) {
			return fmt.Errorf("reading %s: %w", fixedHashPath, err)
		}
		if string(storedHash) != contentHash(preFixContent) {
			if err := writeWithTimestamp(fs, origPath, preFixContent, now); err != nil {
				return err
			}
		}
	}

	if err := afero.WriteFile(fs, bakPath, preFixContent, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", bakPath, err)
	}
	if err := afero.WriteFile(fs, fixedHashPath, []byte(contentHash(fixedContent)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", fixedHashPath, err)
	}
	return nil
}

// writeWithTimestamp writes data to path and stamps its mtime to `now`,
// so session-window comparisons work against caller-supplied time
// rather than the real wall clock (in-memory filesystems used by tests
// would otherwise always stamp the real time of the test run).
func writeWithTimestamp(fs afero.Fs, path string, data []byte, now time.Time) error {
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := fs.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("setting mtime on %s: %w", path, err)
	}
	return nil
}

func withinSessionWindow(fs afero.Fs, origPath string, now time.Time) bool {
	info, err := fs.Stat(origPath)
	if err != nil {
		return false
	}
	return now.Sub(info.ModTime()) <= sessionWindow
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}
