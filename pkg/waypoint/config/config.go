// Package config loads route definitions from TOML.
//
// A route file has an optional [router] table and any number of [[segment]]
// entries:
//
//	[router]
//	history_size = 30
//	replay_on_irreversible = false
//	log_level = "debug"
//
//	[[segment]]
//	id = "home"
//	presenter = "root"
//	loader = "screen"
//	singleton = true
//
//	[[segment]]
//	id = "tabs"
//	presenter = "root"
//	kind = "branching"
//	loader = "screen"
//	branches = ["feed", "profile"]
//
// Loaders are referenced by name and supplied by the application when the
// file is applied to a router.Context.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Segment kinds as written in route files.
const (
	KindVisual    = "visual"
	KindBranching = "branching"
	KindBranch    = "branch"
	KindBranched  = "branched"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid route file")

// File is a decoded route file.
type File struct {
	Router   Router    `toml:"router"`
	Segments []Segment `toml:"segment"`
}

// Router holds router-wide settings. Pointer fields distinguish "unset" from
// false.
type Router struct {
	HistorySize          int    `toml:"history_size"`
	RecordHistory        *bool  `toml:"record_history"`
	ReplayOnIrreversible *bool  `toml:"replay_on_irreversible"`
	LogLevel             string `toml:"log_level"`
	LogPath              string `toml:"log_path"`
}

// Segment describes one router.Segment.
type Segment struct {
	ID        string   `toml:"id"`
	Presenter string   `toml:"presenter"`
	Kind      string   `toml:"kind"`
	Singleton bool     `toml:"singleton"`
	Loader    string   `toml:"loader"`
	Branches  []string `toml:"branches"`
	Title     string   `toml:"title"`
}

// Load reads and validates the route file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// LoadFromEnv loads the file named by WAYPOINT_CONFIG. It returns nil and no
// error when the variable is unset.
func LoadFromEnv() (*File, error) {
	path := os.Getenv(constants.ConfigEnvVar)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

// Decode parses and validates a route file. Keys that don't map to a field
// are an error.
func Decode(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalid)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file for duplicate ids, unknown kinds and branches that
// don't resolve to a branch segment.
func (f *File) Validate() error {
	if f.Router.HistorySize < 0 {
		return fmt.Errorf("history_size %d is negative: %w", f.Router.HistorySize, ErrInvalid)
	}

	seen := make(map[string]Segment, len(f.Segments))
	for i, s := range f.Segments {
		if s.ID == "" {
			return fmt.Errorf("segment %d has no id: %w", i, ErrInvalid)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("segment %q is defined twice: %w", s.ID, ErrInvalid)
		}
		if s.Presenter == "" {
			return fmt.Errorf("segment %q has no presenter: %w", s.ID, ErrInvalid)
		}
		kind := s.kind()
		if !slices.Contains([]string{KindVisual, KindBranching, KindBranch, KindBranched}, kind) {
			return fmt.Errorf("segment %q has unknown kind %q: %w", s.ID, s.Kind, ErrInvalid)
		}
		if kind == KindBranch && s.Loader != "" {
			return fmt.Errorf("branch segment %q can't have a loader: %w", s.ID, ErrInvalid)
		}
		if kind != KindBranch && s.Loader == "" {
			return fmt.Errorf("segment %q needs a loader: %w", s.ID, ErrInvalid)
		}
		if kind != KindBranching && len(s.Branches) > 0 {
			return fmt.Errorf("segment %q lists branches but is %s: %w", s.ID, kind, ErrInvalid)
		}
		seen[s.ID] = s
	}

	for _, s := range f.Segments {
		for _, b := range s.Branches {
			target, ok := seen[b]
			if !ok {
				return fmt.Errorf("segment %q lists unknown branch %q: %w", s.ID, b, ErrInvalid)
			}
			if k := target.kind(); k != KindBranch && k != KindBranched {
				return fmt.Errorf("segment %q lists %q which is %s, not a branch: %w", s.ID, b, k, ErrInvalid)
			}
		}
	}
	return nil
}

// Loaders are consulted by name when a file is applied.
type Loaders map[string]router.Loader

// Apply registers every segment of f on ctx. Every loader a segment names must
// be present in loaders.
func (f *File) Apply(ctx *router.Context, loaders Loaders) error {
	built := make([]*router.Segment, 0, len(f.Segments))
	for _, s := range f.Segments {
		seg, err := s.build(loaders)
		if err != nil {
			return err
		}
		built = append(built, seg)
	}
	for _, seg := range built {
		ctx.RegisterSegment(seg)
	}
	return nil
}

// RouterOptions translates the [router] table.
func (f *File) RouterOptions() []router.Option {
	var opts []router.Option
	if f.Router.HistorySize > 0 {
		opts = append(opts, router.WithHistorySize(f.Router.HistorySize))
	}
	if f.Router.RecordHistory != nil {
		opts = append(opts, router.WithHistoryRecording(*f.Router.RecordHistory))
	}
	if f.Router.ReplayOnIrreversible != nil {
		opts = append(opts, router.WithReplayOnIrreversible(*f.Router.ReplayOnIrreversible))
	}
	return opts
}

// IDs lists the segment identifiers in file order.
func (f *File) IDs() []route.Identifier {
	ids := make([]route.Identifier, len(f.Segments))
	for i, s := range f.Segments {
		ids[i] = route.ID(s.ID)
	}
	return ids
}

func (s Segment) kind() string {
	if s.Kind == "" {
		return KindVisual
	}
	return strings.ToLower(s.Kind)
}

func (s Segment) build(loaders Loaders) (*router.Segment, error) {
	var opts []router.SegmentOption
	if s.Singleton {
		opts = append(opts, router.Singleton())
	}
	if s.Title != "" {
		opts = append(opts, router.WithTitle(s.Title))
	}

	id, presenter := route.ID(s.ID), route.ID(s.Presenter)
	kind := s.kind()
	if kind == KindBranch {
		return router.NewBranchSegment(id, presenter, opts...), nil
	}

	loader, ok := loaders[s.Loader]
	if !ok {
		return nil, fmt.Errorf("config: segment %q uses unknown loader %q: %w", s.ID, s.Loader, ErrInvalid)
	}
	switch kind {
	case KindBranching:
		branches := make([]route.Identifier, len(s.Branches))
		for i, b := range s.Branches {
			branches[i] = route.ID(b)
		}
		return router.NewBranchingSegment(id, presenter, loader, branches, opts...), nil
	case KindBranched:
		return router.NewBranchedSegment(id, presenter, loader, opts...), nil
	default:
		return router.NewSegment(id, presenter, loader, opts...), nil
	}
}
