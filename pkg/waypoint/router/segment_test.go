package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

type box struct{ n int }

func countingLoader(calls *int, results ...Container) Loader {
	return func(route.Item) (Container, error) {
		i := *calls
		*calls++
		if i < len(results) {
			return results[i], nil
		}
		return &box{n: i}, nil
	}
}

func TestRealizeNonSingletonLoadsEveryTime(t *testing.T) {
	calls := 0
	s := NewSegment(route.ID("a"), route.ID("push"), countingLoader(&calls))

	first, err := s.Realize(route.Item{})
	require.NoError(t, err)
	second, err := s.Realize(route.Item{})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotSame(t, first, second)
}

func TestRealizeSingletonCaches(t *testing.T) {
	calls := 0
	s := NewSegment(route.ID("a"), route.ID("root"), countingLoader(&calls), Singleton())

	first, _ := s.Realize(route.Item{})
	second, _ := s.Realize(route.Item{})

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)

	s.Reset()
	_, loaded := s.Cached()
	assert.False(t, loaded)
	_, _ = s.Realize(route.Item{})
	assert.Equal(t, 2, calls)
}

func TestRealizeSingletonDoesNotCacheNothing(t *testing.T) {
	calls := 0
	s := NewSegment(route.ID("a"), route.ID("root"), countingLoader(&calls, nil), Singleton())

	c, err := s.Realize(route.Item{})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = s.Realize(route.Item{})
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, 2, calls)
}

func TestRealizeLoaderError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSegment(route.ID("a"), route.ID("root"), func(route.Item) (Container, error) {
		return nil, boom
	}, Singleton())

	_, err := s.Realize(route.Item{})
	assert.ErrorIs(t, err, boom)
	_, loaded := s.Cached()
	assert.False(t, loaded)
}

func TestRealizePassesItem(t *testing.T) {
	var got route.Item
	s := NewSegment(route.ID("detail"), route.ID("push"), func(item route.Item) (Container, error) {
		got = item
		return &box{}, nil
	})

	item := route.NewItem(route.ID("detail"), route.Options{"id": "7"}).WithData(42)
	_, err := s.Realize(item)
	require.NoError(t, err)
	assert.Equal(t, "7", got.Options["id"])
	assert.Equal(t, 42, got.Data)
}

func TestSegmentKinds(t *testing.T) {
	tabs := NewBranchingSegment(route.ID("tabs"), route.ID("root"), nil, route.IDs("feed"))
	assert.True(t, tabs.HostsBranch(route.ID("feed")))
	assert.False(t, tabs.HostsBranch(route.ID("other")))
	assert.Equal(t, "branching", tabs.Kind().String())

	assert.Equal(t, "branch", NewBranchSegment(route.ID("feed"), route.ID("tab")).Kind().String())
	assert.Equal(t, "branched", NewBranchedSegment(route.ID("p"), route.ID("tab"), nil).Kind().String())
	assert.Equal(t, "visual", NewSegment(route.ID("v"), route.ID("push"), nil).Kind().String())

	assert.Equal(t, CanSelectBranch, requiredCapability(SegmentBranched))
	assert.Equal(t, CanPresent, requiredCapability(SegmentVisual|SegmentBranching))
}

func TestContextLastWriteWins(t *testing.T) {
	ctx := NewContext()
	first := NewSegment(route.ID("a"), route.ID("root"), nil)
	second := NewSegment(route.ID("a"), route.ID("push"), nil)

	ctx.RegisterSegment(first).RegisterSegment(second)

	got, ok := ctx.Segment(route.ID("a"))
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Len(t, ctx.Segments(), 1)

	ctx.RegisterPresenter(&Funcs{ID: route.ID("p")})
	ctx.RegisterPresenter(&Funcs{ID: route.ID("p"), PresentF: func(PresentRequest, Completion) {}})
	p, ok := ctx.Presenter(route.ID("p"))
	require.True(t, ok)
	assert.True(t, p.Capabilities().Has(CanPresent))
}

func TestContextValidate(t *testing.T) {
	ctx := NewContext(WithSegments(NewSegment(route.ID("a"), route.ID("root"), nil)))

	segs, err := ctx.Validate(route.MustSequence("a", "a"))
	require.NoError(t, err)
	assert.Len(t, segs, 2)

	_, err = ctx.Validate(route.MustSequence("a", "b"))
	assert.ErrorIs(t, err, &Error{Kind: KindSegmentNotRegistered, ID: route.ID("b")})

	_, err = ctx.Validate(route.Sequence{})
	assert.ErrorIs(t, err, ErrInvalidRouteSequence)
}

// halfPresenter claims dismissal without implementing it.
type halfPresenter struct{}

func (halfPresenter) Identifier() route.Identifier       { return route.ID("half") }
func (halfPresenter) Capabilities() Capability           { return CanPresent | CanDismiss }
func (halfPresenter) Present(PresentRequest, Completion) {}

func TestCheckPresenter(t *testing.T) {
	seg := NewSegment(route.ID("a"), route.ID("half"), nil)
	err := checkPresenter(seg, halfPresenter{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestErrorMessage(t *testing.T) {
	err := cannotPresent(route.ID("push"), route.ID("x"), errors.New("no parent"))
	assert.Equal(t, `router: cannot_present (presenter "push", segment "x"): no parent`, err.Error())
	assert.Equal(t, KindCannotPresent, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
}
