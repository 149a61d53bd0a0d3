package presenters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/presenters"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/sim"
)

type fixture struct {
	window *sim.Window
	router *router.Router
}

func newFixture(t *testing.T, opts ...router.Option) *fixture {
	t.Helper()
	w := sim.NewWindow()
	load := w.Loader()

	ctx := presenters.Seed(router.NewContext())
	ctx.RegisterSegment(router.NewSegment(route.ID("home"), route.ID("root"), load, router.Singleton())).
		RegisterSegment(router.NewSegment(route.ID("detail"), route.ID("push"), load)).
		RegisterSegment(router.NewSegment(route.ID("login"), route.ID("modal"), load)).
		RegisterSegment(router.NewSegment(route.ID("promo"), route.ID("replace"), load)).
		RegisterSegment(router.NewBranchingSegment(route.ID("tabs"), route.ID("root"), load, route.IDs("feed", "profile"))).
		RegisterSegment(router.NewBranchSegment(route.ID("feed"), route.ID("tab"))).
		RegisterSegment(router.NewBranchedSegment(route.ID("profile"), route.ID("tab"), load))

	opts = append([]router.Option{router.WithWindow(w)}, opts...)
	return &fixture{window: w, router: router.New(ctx, opts...)}
}

func (f *fixture) execute(t *testing.T, literal string) error {
	t.Helper()
	seq, err := route.Parse(literal)
	require.NoError(t, err)

	var got error
	called := false
	f.router.Execute(context.Background(), seq, func(_ router.Result, err error) {
		called = true
		got = err
	})
	require.True(t, called, "inline navigation should complete synchronously")
	return got
}

func TestRootAndPush(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute(t, "home/detail"))
	assert.Equal(t, []string{"home", "detail"}, f.window.Visible())
	assert.Equal(t, []string{"window: root home", "home: push detail"}, f.window.Log().Take())

	require.NoError(t, f.execute(t, "home"))
	assert.Equal(t, []string{"home: pop detail"}, f.window.Log().Take())
	assert.Equal(t, "home", f.window.String())
}

func TestModalStyleAndAnimation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute(t, "home/login;modalPresentationStyle=formSheet;animated=false"))
	assert.Equal(t, []string{
		"window: root home",
		"home: modal login (formSheet) (animated=false)",
	}, f.window.Log().Take())

	modal, style := f.window.Root().Modal()
	require.NotNil(t, modal)
	assert.Equal(t, "login", modal.Name())
	assert.Equal(t, presenters.ModalFormSheet, style)

	require.NoError(t, f.execute(t, "home"))
	assert.Equal(t, []string{"home: dismiss login (animated=false)"}, f.window.Log().Take())
}

func TestReplaceFallsBackToBackNavigation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute(t, "home/promo"))
	assert.Equal(t, "home > promo", f.window.String())
	f.window.Log().Take()

	require.NoError(t, f.execute(t, "home/detail"))
	assert.Equal(t, []string{"promo: back", "home: push detail"}, f.window.Log().Take())
	assert.Equal(t, "home > detail", f.window.String())
}

func TestTabs(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute(t, "tabs/feed"))
	assert.Equal(t, []string{"window: root tabs", "tabs: select feed"}, f.window.Log().Take())

	top := f.router.ViewControllers()
	require.Len(t, top, 2)
	assert.Same(t, top[0], top[1], "a branch without its own container records the trunk")

	require.NoError(t, f.execute(t, "tabs/profile"))
	assert.Equal(t, []string{"tabs: hide feed", "tabs: select profile"}, f.window.Log().Take())
	assert.Equal(t, "tabs > profile", f.window.String())

	ids, selected := f.window.Root().Branches()
	assert.Equal(t, route.IDs("profile"), ids)
	assert.Equal(t, route.ID("profile"), selected)
}

func TestTabsAppendOnly(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute(t, "tabs/feed;appendOnly"))
	assert.Equal(t, []string{"window: root tabs", "tabs: add feed"}, f.window.Log().Take())

	ids, selected := f.window.Root().Branches()
	assert.Equal(t, route.IDs("feed"), ids)
	assert.True(t, selected.IsZero())
}

func TestHostErrorsSurfaceThroughRouter(t *testing.T) {
	t.Run("push without parent", func(t *testing.T) {
		f := newFixture(t)
		err := f.execute(t, "detail")
		assert.ErrorIs(t, err, router.ErrCannotPresent)
		assert.ErrorIs(t, err, presenters.ErrNoParent)
		assert.True(t, presenters.IsHostError(err))
		assert.Empty(t, f.router.Stack())
	})

	t.Run("root without window", func(t *testing.T) {
		ctx := presenters.Seed(router.NewContext())
		w := sim.NewWindow()
		ctx.RegisterSegment(router.NewSegment(route.ID("home"), route.ID("root"), w.Loader()))
		r := router.New(ctx)

		var got error
		r.Execute(context.Background(), route.MustSequence("home"), func(_ router.Result, err error) { got = err })
		assert.ErrorIs(t, got, presenters.ErrNoWindow)
	})
}

func TestWrongHost(t *testing.T) {
	var got error
	presenters.Push{}.Present(router.PresentRequest{
		Segment:   route.ID("detail"),
		Container: "detail",
		Parent:    "not a stacker",
	}, func(err error) { got = err })

	require.Error(t, got)
	assert.ErrorIs(t, got, presenters.ErrWrongHost)
	assert.Contains(t, got.Error(), "push: present: string is not a Stacker")
}

func TestParseModalStyle(t *testing.T) {
	tests := []struct {
		raw  string
		want presenters.ModalStyle
		ok   bool
	}{
		{"0", presenters.ModalAutomatic, true},
		{"2", presenters.ModalPageSheet, true},
		{"formsheet", presenters.ModalFormSheet, true},
		{"overFullScreen", presenters.ModalOverFullScreen, true},
		{"42", presenters.ModalStyle(42), false},
		{"sideways", presenters.ModalAutomatic, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := presenters.ParseModalStyle(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeed(t *testing.T) {
	ctx := presenters.Seed(router.NewContext())
	assert.Len(t, ctx.Presenters(), len(presenters.Standard()))

	replace, ok := ctx.Presenter(route.ID("replace"))
	require.True(t, ok)
	assert.False(t, replace.Capabilities().Has(router.CanDismiss))

	tab, ok := ctx.Presenter(route.ID("tab"))
	require.True(t, ok)
	assert.True(t, tab.Capabilities().Has(router.CanSelectBranch|router.CanDismiss))
}
