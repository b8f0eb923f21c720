package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"
)

// DefaultFilePath is where the file driver writes when no path is set.
const DefaultFilePath = "email_log.txt"

// FileConfig configures the file driver.
type FileConfig struct {
	Path string
}

// FileNotifier appends every message to a local file instead of sending it.
type FileNotifier struct {
	path     string
	composer *Composer
	clock    clockwork.Clock

	mu sync.Mutex
}

// NewFileNotifier creates a FileNotifier.
func NewFileNotifier(cfg FileConfig, composer *Composer, clock clockwork.Clock) *FileNotifier {
	if cfg.Path == "" {
		cfg.Path = DefaultFilePath
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FileNotifier{path: cfg.Path, composer: composer, clock: clock}
}

// Path returns the file messages are appended to.
func (f *FileNotifier) Path() string {
	return f.path
}

// Deliver renders the message and appends it to the file.
func (f *FileNotifier) Deliver(ctx context.Context, recipient, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := f.composer.Compose(recipient, token)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("notify: create directory: %w", err)
		}
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("notify: open %s: %w", f.path, err)
	}

	_, err = fmt.Fprintf(file, "\n=== New Email ===\nTimestamp: %d\nTo: %s\nSubject: %s\nBody:\n%s\n==================\n\n",
		f.clock.Now().Unix(), msg.To, msg.Subject, msg.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("notify: write %s: %w", f.path, err)
	}
	return nil
}
