package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routes = `
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
id = "settings"
presenter = "push"
loader = "screen"

[[segment]]
id = "options"
presenter = "modal"
loader = "screen"

[[segment]]
id = "promo"
presenter = "replace"
loader = "screen"
`

func writeRoutes(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append(args, "--lang", "en"))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "-c", writeRoutes(t, routes))
	require.NoError(t, err)
	assert.Equal(t, "ok: 5 segments\n", out)
}

func TestValidateReportsProblems(t *testing.T) {
	t.Run("missing presenter", func(t *testing.T) {
		path := writeRoutes(t, routes+"\n[[segment]]\nid = \"x\"\npresenter = \"nowhere\"\nloader = \"screen\"\n")
		out, err := run(t, "validate", "-c", path)
		require.Error(t, err)
		assert.Contains(t, out, `x: Screen "x" uses presenter "nowhere", which is not registered.`)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeRoutes(t, routes+"\n[[segment]]\nid = \"x\"\npresenter = \"push\"\nloader = \"screen\"\ncolour = \"red\"\n")
		out, err := run(t, "validate", "-c", path)
		require.Error(t, err)
		assert.Contains(t, out, "The route file is invalid:")
	})

	t.Run("no file", func(t *testing.T) {
		t.Setenv("WAYPOINT_CONFIG", "")
		_, err := run(t, "validate", "-c", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no route file")
	})
}

func TestPlan(t *testing.T) {
	path := writeRoutes(t, routes)

	out, err := run(t, "plan", "-c", path, "--from", "library/game/options", "--to", "library/settings")
	require.NoError(t, err)
	assert.Equal(t, "reuse    library\npop      options\npop      game\npresent  settings\n", out)

	out, err = run(t, "plan", "-c", path, "--from", "library/game", "--to", "game;id=2", "--append")
	require.NoError(t, err)
	assert.Equal(t, "reuse    library\nreuse    game\npresent  game;id=2\n", out)

	out, err = run(t, "plan", "-c", path, "--from", "library", "--to", "library")
	require.NoError(t, err)
	assert.Equal(t, "nothing to do\n", out)

	out, err = run(t, "plan", "-c", path, "--to", "library/arcade")
	require.Error(t, err)
	assert.Equal(t, "No screen is registered as \"arcade\".\n", out)
}

func TestSimulate(t *testing.T) {
	path := writeRoutes(t, routes)

	out, err := run(t, "simulate", "-c", path, "library", "library/game", "+options", "back", "pop", "forward", "nope")
	require.Error(t, err)
	assert.EqualError(t, err, "simulate: 2 of 7 steps failed")
	assert.Equal(t, `$ library
  stack: library
$ library/game
  stack: library/game
$ +options
  stack: library/game/options
$ back
  stack: library/game
$ pop
  stack: library
$ forward
  error: There is no history entry to go to.
  stack: library
$ nope
  error: No screen is registered as "nope".
  stack: library
`, out)
}

func TestSimulateEvents(t *testing.T) {
	path := writeRoutes(t, routes)

	out, err := run(t, "simulate", "-c", path, "--events", "library/promo", "library/game")
	require.NoError(t, err)
	assert.Equal(t, `$ library/promo
  | window: root library
  | library: replace promo
  stack: library/promo
$ library/game
  | promo: back
  | library: push game
  stack: library/game
`, out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "routectl dev (none)\n", out)
}

func TestDefaultLang(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	assert.Equal(t, "de-DE", defaultLang())
}
