package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
)

// debounce groups the burst of events an editor save produces.
const debounce = 150 * time.Millisecond

func cmdWatch(ctx context.Context, a *app, args []string) error {
	f := newFlags(a, "watch", "font.yaml")
	f.outline()
	var (
		job    expandJob
		output string
	)
	f.fs.StringVar(&output, "o", "", "output file (required, must differ from the input)")
	f.fs.StringVar(&job.layer, "layer", "", "write results into this layer")
	f.fs.BoolVar(&job.round, "round", false, "round coordinates to integers")
	if err := f.parse(args); err != nil {
		return err
	}
	if err := f.needArgs(1, 1); err != nil {
		return err
	}
	input, err := filepath.Abs(f.fs.Arg(0))
	if err != nil {
		return err
	}
	if output == "" {
		f.fs.Usage()
		return errUsage
	}
	if out, err := filepath.Abs(output); err != nil {
		return err
	} else if out == input {
		return errors.New("output must differ from the watched file")
	}

	s, err := a.setup(ctx, f, nil, false)
	if err != nil {
		return err
	}
	defer s.close()
	job.workers = s.cfg.Workers
	log := outliner.Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return err
	}

	rebuild := func() {
		font, err := glyphset.Load(input)
		if err != nil {
			a.ui.fail("%v", err)
			return
		}
		rep, err := expandFont(ctx, font, s.opts, job)
		if err != nil {
			if ctx.Err() == nil {
				a.ui.fail("%v", err)
			}
			return
		}
		if err := glyphset.Save(output, font); err != nil {
			a.ui.fail("%v", err)
			return
		}
		a.report(rep, output)
	}

	rebuild()
	log.Info("watching", "file", input)
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("change", "file", ev.Name, "op", ev.Op.String())
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)
		}
	}
}
