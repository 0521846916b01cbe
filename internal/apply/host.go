package apply

// Host performs the UI effects that accompany an open form. Methods are called
// while the controller serializes its operations and must not call back into the
// controller synchronously.
type Host interface {
	// LockScroll suppresses background scrolling. Called once per open.
	LockScroll()
	// UnlockScroll restores background scrolling. Called once per close.
	UnlockScroll()
	// FocusName moves input focus to the name field.
	FocusName()
	// BindEscape installs a cancellation key listener and returns its remover.
	BindEscape(onEscape func()) (unbind func())
}

// NopHost ignores every effect.
type NopHost struct{}

func (NopHost) LockScroll()   {}
func (NopHost) UnlockScroll() {}
func (NopHost) FocusName()    {}

func (NopHost) BindEscape(func()) func() { return func() {} }
