// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package policy

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch loads path once, invokes onChange with the initial value, then
// watches the file for writes and reloads on every one, invoking onChange
// again with the freshly parsed Policy. Reload failures are logged and
// skipped; the previously loaded Policy stays in effect. Watch blocks
// until stop is closed or the watcher errors fatally.
func Watch(path string, stop <-chan struct{}, onChange func(*Policy)) error {
	initial, err := Load(path)
	if err != nil {
		return err
	}
	onChange(initial)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating policy file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching policy file %s: %w", path, err)
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p, err := Load(path)
			if err != nil {
				log.Printf("policy: reload of %s failed, keeping previous policy: %v", path, err)
				continue
			}
			onChange(p)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("policy: watcher error on %s: %v", path, err)
		}
	}
}
