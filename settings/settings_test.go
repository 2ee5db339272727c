package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
)

func custom() Settings {
	s := Default()
	s.Options = s.Options.WithThickness(24).WithContrast(12, 30).WithJoin(outliner.JoinRound).WithCap(outliner.CapButt)
	s.Options.MiterLimit = 24
	s.Options.KeepBounds = true
	s.Options.AddOriginal = true
	s.Display.Color = "#ff0000"
	return s
}

func TestFromValues(t *testing.T) {
	s, err := FromValues(map[string]any{
		KeyThickness:          int64(20),
		KeyContrast:           "5",
		KeyMiterFromThickness: false,
		KeyMiterLimit:         uint64(4),
		KeyCorner:             "Butt",
		KeyKeepBounds:         1,
		"unrelated":           []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Options.Thickness)
	assert.Equal(t, 5.0, s.Options.Contrast)
	assert.Equal(t, 4.0, s.Options.MiterLimit)
	assert.Equal(t, outliner.JoinBevel, s.Options.Join)
	assert.True(t, s.Options.KeepBounds)
	assert.True(t, s.Options.AddOuter, "missing keys keep defaults")

	linked, err := FromValues(map[string]any{KeyThickness: 15.0})
	require.NoError(t, err)
	assert.Equal(t, 15.0, linked.Options.MiterLimit, "miter limit follows thickness by default")

	_, err = FromValues(map[string]any{KeyThickness: true})
	assert.Error(t, err)
	_, err = FromValues(map[string]any{KeyCorner: "Pointy"})
	assert.Error(t, err)
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQL(ctx, filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores := map[string]Store{
		"lib": LibStore{Font: &glyphset.Font{Name: "Demo"}},
		"sql": db.Font("Demo"),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx)
			require.ErrorIs(t, err, ErrNoSettings)

			want := custom()
			require.NoError(t, store.Save(ctx, want))
			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Load(ctx)
			assert.ErrorIs(t, err, ErrNoSettings)
		})
	}
}

func TestLibStoreKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	f := &glyphset.Font{Lib: map[string]any{"public.glyphOrder": []any{"A"}}}
	store := LibStore{Font: f}

	require.NoError(t, store.Save(ctx, Default()))
	assert.Equal(t, 10.0, f.Lib["com.gogpu.outliner.thickness"])
	require.NoError(t, store.Clear(ctx))
	assert.Len(t, f.Lib, 1)
	assert.Contains(t, f.Lib, "public.glyphOrder")
}

func TestLibStoreSurvivesFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "font.yaml")
	f := &glyphset.Font{Name: "Demo"}
	want := custom()
	require.NoError(t, LibStore{Font: f}.Save(ctx, want))
	require.NoError(t, glyphset.Save(path, f))

	loaded, err := glyphset.Load(path)
	require.NoError(t, err)
	got, err := LibStore{Font: loaded}.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLStoreSeparatesFonts(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQL(ctx, filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Font("Serif").Save(ctx, custom()))
	require.NoError(t, db.Font("Sans").Save(ctx, Default()))
	require.NoError(t, db.Font("Serif").Save(ctx, custom()))

	fonts, err := db.Fonts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sans", "Serif"}, fonts)

	sans, err := db.Font("Sans").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Default(), sans)
}
