package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/cliconfig"
	"github.com/optiknode/rg10pat/internal/domain"
)

// PatternWatcher monitors a TOML pattern file and republishes each saved
// pattern to a running sensor session, so an operator can tune channel values
// live with nothing but a text editor.
type PatternWatcher struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	updates chan domain.Pattern
}

// NewPatternWatcher returns a watcher over path. Change bursts within the
// debounce window collapse into one reload.
func NewPatternWatcher(path string, debounce time.Duration, log zerolog.Logger) *PatternWatcher {
	return &PatternWatcher{
		path:     path,
		debounce: debounce,
		log:      log,
		updates:  make(chan domain.Pattern, 1),
	}
}

// Updates is the channel that receives reloaded patterns.
func (pw *PatternWatcher) Updates() <-chan domain.Pattern { return pw.updates }

// Run watches the pattern file until ctx is done. The watch is registered on
// the containing directory so editors that replace the file (write to a temp
// name, then rename) are still observed.
func (pw *PatternWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(pw.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Base(pw.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pw.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			pw.log.Warn().Err(err).Msg("pattern watcher error")
		}
	}
}

func (pw *PatternWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.timer != nil {
		pw.timer.Stop()
	}
	pw.timer = time.AfterFunc(pw.debounce, pw.reload)
}

// reload parses the file and publishes the pattern, dropping any pattern the
// session has not consumed yet so only the latest save wins.
func (pw *PatternWatcher) reload() {
	pat, err := cliconfig.LoadPatternFile(pw.path)
	if err != nil {
		pw.log.Warn().Err(err).Str("path", pw.path).Msg("ignoring unreadable pattern file")
		return
	}
	select {
	case pw.updates <- pat:
	default:
		select {
		case <-pw.updates:
		default:
		}
		pw.updates <- pat
	}
	pw.log.Info().
		Int("r", pat.R).Int("g", pat.G).Int("b", pat.B).
		Msg("pattern file reloaded")
}

// Watch programs the initial pattern from the file at path and then keeps the
// sensor in sync with every subsequent save until ctx is cancelled. The driver
// is restored on the way out as in a plain send.
func Watch(ctx context.Context, cfg cliconfig.Config, path string, log zerolog.Logger) error {
	pat, err := cliconfig.LoadPatternFile(path)
	if err != nil {
		return err
	}

	ctl, err := NewController(cfg, log)
	if err != nil {
		return err
	}

	pw := NewPatternWatcher(path, cfg.Debounce, log)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	watchErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		watchErr <- pw.Run(watchCtx)
	}()

	runErr := ctl.RunUntil(ctx, pat, pw.Updates())

	cancel()
	wg.Wait()

	if runErr != nil {
		return runErr
	}
	return <-watchErr
}
