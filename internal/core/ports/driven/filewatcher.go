package driven

import "context"

// FileWatcher reports changes to a local file.
type FileWatcher interface {
	// Watch emits one signal per burst of changes to path. The channel is
	// closed when ctx is cancelled or the watcher fails.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
