package motion

import "sync/atomic"

// Feed is a Source fed by pushes from the host, such as a platform
// accelerometer callback or keyboard tilt emulation. Push and Read may be
// called from different goroutines.
type Feed struct {
	value atomic.Pointer[Acceleration]
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Push(a Acceleration) {
	f.value.Store(&a)
}

// Clear drops the stored reading so Read reports nothing until the next Push.
func (f *Feed) Clear() {
	f.value.Store(nil)
}

func (f *Feed) Read() (Acceleration, bool) {
	v := f.value.Load()
	if v == nil {
		return Acceleration{}, false
	}
	return *v, true
}
