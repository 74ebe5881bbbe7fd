package engine

// ListenerID identifies a registered listener so it can be removed later.
// Zero is never handed out.
type ListenerID uint32

type listener[T any] struct {
	id       ListenerID
	callback func(T)
}

// EventWithArg is a multi-cast event carrying one argument.
// Allows multiple listeners to subscribe to a single event.
type EventWithArg[T any] struct {
	nextID    ListenerID
	listeners []listener[T]
}

// AddListener adds a callback to be invoked when the event fires
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, callback: callback})
	return e.nextID
}

// RemoveListener unregisters the listener with the given id.
// Safe to call from inside a listener; the running Invoke still sees the old list.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id != id {
			continue
		}
		kept := make([]listener[T], 0, len(e.listeners)-1)
		kept = append(kept, e.listeners[:i]...)
		kept = append(kept, e.listeners[i+1:]...)
		e.listeners = kept
		return true
	}
	return false
}

// RemoveAllListeners clears all listeners
func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners in registration order
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.callback(arg)
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// Event is an EventWithArg without an argument
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id ListenerID) bool {
	return e.inner.RemoveListener(id)
}

func (e *Event) RemoveAllListeners() {
	e.inner.RemoveAllListeners()
}

func (e *Event) Invoke() {
	e.inner.Invoke(struct{}{})
}

func (e *Event) GetListenerCount() int {
	return e.inner.GetListenerCount()
}
