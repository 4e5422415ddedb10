package usecase

// Config contains all application configuration.
type Config struct {
	GitDir  string
	Color   bool
	Zsh     bool
	Symbols Symbols
}

// Mode derives the rendering mode from the parsed flags. Color off always
// means plain output, regardless of the zsh flag.
func (c *Config) Mode() RenderMode {
	switch {
	case !c.Color:
		return RenderPlain
	case c.Zsh:
		return RenderZsh
	default:
		return RenderTerminal
	}
}

// RenderMode selects how colored fragments are encoded.
type RenderMode int

const (
	// RenderPlain emits fragments unchanged.
	RenderPlain RenderMode = iota
	// RenderTerminal wraps fragments in ANSI escape sequences.
	RenderTerminal
	// RenderZsh wraps fragments in zsh prompt percent escapes (%F{name}).
	RenderZsh
)

// Color is a semantic color for a rendered fragment.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
)

// ChangeFlags is a bit set describing how one side (index or worktree) of a
// status entry differs.
type ChangeFlags uint8

const (
	ChangeNew ChangeFlags = 1 << iota
	ChangeModified
	ChangeDeleted
	ChangeRenamed
	ChangeTypeChanged
)

// Has reports whether flag is set.
func (f ChangeFlags) Has(flag ChangeFlags) bool {
	return f&flag != 0
}

// Change is one file's status entry as reported by the repository adapter.
type Change struct {
	Index    ChangeFlags
	Worktree ChangeFlags
	// WorktreeDelta reports whether the entry carries an actual
	// index-to-worktree difference. Entries can be present without one.
	WorktreeDelta bool
}

// Current reports whether the entry is fully unmodified on both sides.
func (c Change) Current() bool {
	return c.Index == 0 && c.Worktree == 0
}

// ChangeCounters holds new/modified/deleted counts for one side.
type ChangeCounters struct {
	New      int
	Modified int
	Deleted  int
}

// Any reports whether at least one counter is non-zero.
func (c ChangeCounters) Any() bool {
	return c.New > 0 || c.Modified > 0 || c.Deleted > 0
}

// Divergence holds commit counts relative to the configured upstream.
type Divergence struct {
	Ahead  int
	Behind int
}

// BranchKind tags the outcome of resolving the checked-out branch.
type BranchKind int

const (
	// BranchNamed means a branch is checked out and has a shorthand name.
	BranchNamed BranchKind = iota
	// BranchNone means there is no usable branch: unborn HEAD or detached.
	BranchNone
)

// NoBranchName is displayed when the repository has no usable branch.
const NoBranchName = "no branch"

// BranchRef is the outcome of branch resolution. Failures are reported as
// ordinary errors by the adapter, never encoded here.
type BranchRef struct {
	Kind BranchKind
	Name string
}

// Display returns the branch name for the prompt line.
func (b BranchRef) Display() string {
	if b.Kind == BranchNamed && b.Name != "" {
		return b.Name
	}
	return NoBranchName
}

// Symbols configures the decorative parts of the summary line.
type Symbols struct {
	Ahead        string
	Behind       string
	OpenBracket  string
	CloseBracket string
}

// DefaultSymbols returns the stock prompt symbols.
func DefaultSymbols() Symbols {
	return Symbols{
		Ahead:        "↑",
		Behind:       "↓",
		OpenBracket:  "[",
		CloseBracket: "]",
	}
}
