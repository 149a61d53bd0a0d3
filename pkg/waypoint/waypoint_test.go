package waypoint_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/sim"
)

const routes = `
[router]
history_size = 3

[[segment]]
id = "library"
presenter = "root"
loader = "screen"
singleton = true

[[segment]]
id = "game"
presenter = "push"
loader = "screen"

[[segment]]
id = "options"
presenter = "modal"
loader = "screen"
`

func TestNewFromConfig(t *testing.T) {
	file, err := config.Decode(routes)
	require.NoError(t, err)

	w := sim.NewWindow()
	reg := prometheus.NewRegistry()
	r, err := waypoint.New(waypoint.Options{
		Config:          file,
		Loaders:         config.Loaders{"screen": w.Loader()},
		Window:          w,
		MetricsRegistry: reg,
	})
	require.NoError(t, err)

	var navErr error
	for _, literal := range []string{"library", "library/game", "library/game/options", "library/game"} {
		seq, err := route.Parse(literal)
		require.NoError(t, err)
		r.Execute(context.Background(), seq, func(_ router.Result, err error) {
			navErr = err
		})
		require.NoError(t, navErr, literal)
	}
	assert.Equal(t, "library > game", w.String())

	entries, cursor := r.HistoryEntries()
	assert.Len(t, entries, 3, "history_size bounds the history")
	assert.Equal(t, 2, cursor)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.toml")
	require.NoError(t, os.WriteFile(path, []byte(routes), 0o644))
	t.Setenv(constants.ConfigEnvVar, path)

	w := sim.NewWindow()
	r, err := waypoint.New(waypoint.Options{Loaders: config.Loaders{"screen": w.Loader()}, Window: w})
	require.NoError(t, err)

	_, ok := r.Context().Segment(route.ID("options"))
	assert.True(t, ok)
	assert.Len(t, r.Context().Presenters(), 5)
}

func TestNewSetupErrors(t *testing.T) {
	t.Setenv(constants.ConfigEnvVar, "")

	_, err := waypoint.New(waypoint.Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.True(t, waypoint.IsSetupError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file, err := config.Decode(routes)
	require.NoError(t, err)
	_, err = waypoint.New(waypoint.Options{Config: file})
	assert.True(t, waypoint.IsSetupError(err))
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "waypoint: apply_config:")
}

func TestNewWithoutConfig(t *testing.T) {
	t.Setenv(constants.ConfigEnvVar, "")

	w := sim.NewWindow()
	r, err := waypoint.New(waypoint.Options{
		Window:   w,
		Segments: []*router.Segment{router.NewSegment(route.ID("home"), route.ID("root"), w.Loader())},
	})
	require.NoError(t, err)

	r.Execute(context.Background(), route.MustSequence("home"), func(_ router.Result, err error) {
		require.NoError(t, err)
	})
	assert.Equal(t, "home", w.String())
}

func Example() {
	w := sim.NewWindow()
	r, err := waypoint.New(waypoint.Options{
		Window: w,
		Segments: []*router.Segment{
			router.NewSegment(route.ID("library"), route.ID("root"), w.Loader(), router.Singleton()),
			router.NewSegment(route.ID("game"), route.ID("push"), w.Loader()),
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	show := func(_ router.Result, err error) {
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(w)
	}
	r.Execute(context.Background(), route.MustSequence("library", "game;id=7"), show)
	r.Pop(context.Background(), show)

	for _, e := range w.Log().Events() {
		fmt.Println(e)
	}

	// Output:
	// library > game
	// library
	// window: root library
	// library: push game
	// library: pop game
}
