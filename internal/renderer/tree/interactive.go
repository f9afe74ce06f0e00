package tree

// InteractiveKind tags a node that receives input.
type InteractiveKind uint8

const (
	KindButton InteractiveKind = iota
	KindInput
	KindCheckbox
	KindList
	KindDropdown
)

var kindNames = [...]string{
	KindButton:   "button",
	KindInput:    "input",
	KindCheckbox: "checkbox",
	KindList:     "list",
	KindDropdown: "dropdown",
}

// String returns the kind name.
func (k InteractiveKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseInteractiveKind parses a kind name.
func ParseInteractiveKind(s string) (InteractiveKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return InteractiveKind(i), true
		}
	}
	return KindButton, false
}

// DefaultMaxVisible caps how many dropdown options are shown at once.
const DefaultMaxVisible = 5

// Interactive is the input state the renderer needs to size a node's hit
// region.
type Interactive struct {
	Kind     InteractiveKind
	Open     bool
	Disabled bool

	// Options are the dropdown entries.
	Options []string
	// MaxVisible caps the visible options; 0 means DefaultMaxVisible.
	MaxVisible int
	// ScrollOffset is the index of the first visible option.
	ScrollOffset int
	// DropUp opens the option list above the node.
	DropUp bool
}

// VisibleOptions returns how many options an open dropdown shows.
func (i *Interactive) VisibleOptions() int {
	limit := i.MaxVisible
	if limit <= 0 {
		limit = DefaultMaxVisible
	}
	remaining := len(i.Options) - max(i.ScrollOffset, 0)
	return max(min(limit, remaining), 0)
}
