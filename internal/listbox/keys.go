package listbox

// Key names a keyboard key using DOM key values
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyEnter     Key = "Enter"
	KeySpace     Key = " "
	KeyTab       Key = "Tab"
)

// IsNavigation reports whether k moves the active option
func (k Key) IsNavigation() bool {
	switch k {
	case KeyArrowDown, KeyArrowUp, KeyHome, KeyEnd:
		return true
	}
	return false
}

// IsCommit reports whether k commits the active option
func (k Key) IsCommit() bool {
	return k == KeyEnter || k == KeySpace
}

// KeyResult describes how KeyDown treated a key
type KeyResult struct {
	// Handled is false for keys the listbox leaves to the host, such as Tab
	Handled bool
	// PreventDefault asks the host not to scroll
	PreventDefault bool
	// Moved reports whether the active index changed
	Moved bool
}
