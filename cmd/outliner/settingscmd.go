package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/gogpu/outliner/glyphset"
	"github.com/gogpu/outliner/settings"
)

func cmdSettings(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 || !slices.Contains([]string{"save", "load", "clear"}, args[0]) {
		fmt.Fprintln(a.stderr, "usage: outliner settings save|load|clear [flags] font.yaml")
		return errUsage
	}
	action := args[0]
	f := newFlags(a, "settings "+action, "font.yaml")
	f.outline()
	f.preview()
	f.store()
	var where string
	f.fs.StringVar(&where, "store", "lib", "where settings live: lib (inside the glyph set) or db")
	if err := f.parse(args[1:]); err != nil {
		return err
	}
	if err := f.needArgs(1, 1); err != nil {
		return err
	}
	path := f.fs.Arg(0)
	font, err := glyphset.Load(path)
	if err != nil {
		return err
	}
	s, err := a.setup(ctx, f, font, false)
	if err != nil {
		return err
	}
	defer s.close()

	var store settings.Store
	switch where {
	case "lib":
		store = settings.LibStore{Font: font}
	case "db":
		dbPath, err := settingsDB(s.cfg)
		if err != nil {
			return err
		}
		db, err := settings.OpenSQL(ctx, dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db.Font(font.Name)
	default:
		return fmt.Errorf("unknown store %q", where)
	}

	switch action {
	case "save":
		if err := store.Save(ctx, savedSettings(s.cfg, s.opts)); err != nil {
			return err
		}
	case "clear":
		if err := store.Clear(ctx); err != nil {
			return err
		}
	case "load":
		st, err := store.Load(ctx)
		if err != nil {
			return err
		}
		values := st.Values()
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			a.ui.value(k, values[k])
		}
		return nil
	}

	if where == "lib" {
		if err := glyphset.Save(path, font); err != nil {
			return err
		}
	}
	a.ui.ok("%s settings for %s (%s)", pastTense(action), font.Name, where)
	return nil
}

func pastTense(action string) string {
	if action == "clear" {
		return "cleared"
	}
	return action + "d"
}
