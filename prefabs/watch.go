package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a changed file by what has to be reloaded.
type ChangeKind uint8

const (
	ChangePrefab ChangeKind = iota + 1
	ChangeScript
	ChangeSprite
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePrefab:
		return "prefab"
	case ChangeScript:
		return "script"
	case ChangeSprite:
		return "sprite"
	}
	return "unknown"
}

type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to prefab, script and sprite files in the watched
// directories. Bursts of events for one file within debounce are folded.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

const debounce = 100 * time.Millisecond

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind := classify(event.Name)
			if kind == 0 {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) ChangeKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangePrefab
	case ".tengo":
		return ChangeScript
	case ".png", ".json":
		return ChangeSprite
	}
	return 0
}
