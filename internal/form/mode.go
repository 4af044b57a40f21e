package form

// Mode selects which control supplies the brand of a submitted record.
type Mode int

const (
	SelectExisting Mode = iota
	EnterNew
)

func (m Mode) String() string {
	switch m {
	case SelectExisting:
		return "select-existing"
	case EnterNew:
		return "enter-new"
	}
	return "unknown"
}

// SelectVisible reports whether the brand selector is shown in this mode.
// Exactly one of SelectVisible and InputVisible is true.
func (m Mode) SelectVisible() bool {
	return m != EnterNew
}

// InputVisible reports whether the free-text brand field is shown.
func (m Mode) InputVisible() bool {
	return m == EnterNew
}
