package tui

// The Model hosts the application form. Controller effects may arrive from timer
// goroutines, so host state is guarded by hostMu and every change wakes Update.

// LockScroll freezes list navigation while the form is open.
func (m *Model) LockScroll() {
	m.hostMu.Lock()
	m.scrollLocked = true
	m.hostMu.Unlock()
	m.wake()
}

// UnlockScroll restores list navigation.
func (m *Model) UnlockScroll() {
	m.hostMu.Lock()
	m.scrollLocked = false
	m.hostMu.Unlock()
	m.wake()
}

// FocusName requests focus on the name input at the next update.
func (m *Model) FocusName() {
	m.hostMu.Lock()
	m.focusPending = true
	m.hostMu.Unlock()
	m.wake()
}

// BindEscape routes the escape key to fn until the returned function is called.
func (m *Model) BindEscape(fn func()) func() {
	m.hostMu.Lock()
	m.escapeSeq++
	seq := m.escapeSeq
	m.escape = fn
	m.hostMu.Unlock()

	return func() {
		m.hostMu.Lock()
		defer m.hostMu.Unlock()
		if m.escapeSeq == seq {
			m.escape = nil
		}
	}
}

// pressEscape invokes the bound escape handler, if any.
func (m *Model) pressEscape() bool {
	m.hostMu.Lock()
	fn := m.escape
	m.hostMu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (m *Model) isScrollLocked() bool {
	m.hostMu.Lock()
	defer m.hostMu.Unlock()
	return m.scrollLocked
}

// takeFocus consumes a pending focus request.
func (m *Model) takeFocus() bool {
	m.hostMu.Lock()
	defer m.hostMu.Unlock()
	pending := m.focusPending
	m.focusPending = false
	return pending
}
