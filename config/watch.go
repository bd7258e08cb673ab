package config

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/providers/file"
)

// Watch reloads the configuration file whenever it changes and hands every
// successfully validated result to onChange. Reload failures are passed to
// onError and the previous configuration stays in effect. Watch returns
// once the watcher is installed; it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) error {
	if path == "" {
		return fmt.Errorf("watch: no config file")
	}
	if onError == nil {
		onError = func(error) {}
	}
	fp := file.Provider(path)
	err := fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			onError(fmt.Errorf("watch %s: %w", path, err))
			return
		}
		cfg, err := Load(path)
		if err != nil {
			onError(fmt.Errorf("reload %s: %w", path, err))
			return
		}
		onChange(cfg)
	})
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = fp.Unwatch()
	}()
	return nil
}
