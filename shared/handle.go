package shared

import (
	"reflect"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/sharedptr/errors"
)

// ErrNullAccess matches, under errors.Is, the error returned when an empty
// handle is dereferenced.
var ErrNullAccess = errors.New(errors.PhaseAccess, errors.KindNullAccess).Build()

// box is the control block of an alias group: the value and its share
// count are allocated together and die together.
type box[T any] struct {
	value     *T
	observers []Observer
	refs      int
}

// Handle is a reference-counted owning reference to a single heap value.
//
// The zero value is an empty handle. Handles must be used through
// *Handle[T]; copying a Handle struct bypasses the share count, and
// go vet reports such copies.
//
// A Handle is not safe for concurrent use. All handles of one alias
// group must be manipulated from a single goroutine or under external
// synchronization.
type Handle[T any] struct {
	_ noCopy
	b *box[T]
}

// Empty returns a handle that owns nothing. RefCount reports 0.
func Empty[T any]() *Handle[T] {
	return &Handle[T]{}
}

// Adopt takes ownership of *raw and sets the caller's pointer to nil so the
// value cannot be owned twice. A nil *raw yields an empty handle.
func Adopt[T any](raw **T, opts ...Option) *Handle[T] {
	if raw == nil {
		return &Handle[T]{}
	}
	p := *raw
	*raw = nil
	return adopt(p, opts)
}

// FromPointer takes ownership of p without touching the caller's variable.
// The caller must not release or reuse p independently afterwards.
// A nil p yields an empty handle.
func FromPointer[T any](p *T, opts ...Option) *Handle[T] {
	return adopt(p, opts)
}

// Make allocates a copy of v and returns a handle owning it.
func Make[T any](v T, opts ...Option) *Handle[T] {
	return adopt(&v, opts)
}

func adopt[T any](p *T, opts []Option) *Handle[T] {
	if p == nil {
		return &Handle[T]{}
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	h := &Handle[T]{b: &box[T]{value: p, refs: 1, observers: cfg.observers}}
	h.b.emit(EventAdopted, 0)
	return h
}

// Copy returns a new handle aliasing the same value, incrementing the
// shared count if h is not empty.
func (h *Handle[T]) Copy() *Handle[T] {
	if h == nil || h.b == nil {
		return &Handle[T]{}
	}
	h.b.refs++
	h.b.emit(EventAliased, 0)
	return &Handle[T]{b: h.b}
}

// Move returns a new handle that takes over h's share. h becomes empty and
// the shared count is unchanged.
func (h *Handle[T]) Move() *Handle[T] {
	if h == nil || h.b == nil {
		return &Handle[T]{}
	}
	n := &Handle[T]{b: h.b}
	h.b = nil
	n.b.emit(EventMoved, 0)
	return n
}

// Assign releases h's current share and makes h alias src's value.
// Assigning a handle to itself does nothing. It returns h, so
// a.Assign(b.Assign(c)) reads like a chained assignment.
func (h *Handle[T]) Assign(src *Handle[T]) *Handle[T] {
	if h == nil || h == src {
		return h
	}
	if src != nil && src.b != nil && src.b == h.b {
		// Same alias group: releasing and re-acquiring leaves the count as is.
		return h
	}
	h.Release()
	if src == nil || src.b == nil {
		return h
	}
	h.b = src.b
	h.b.refs++
	h.b.emit(EventAliased, 0)
	return h
}

// MoveFrom releases h's current share and takes over src's share, leaving
// src empty. Moving a handle into itself does nothing.
func (h *Handle[T]) MoveFrom(src *Handle[T]) *Handle[T] {
	if h == nil || h == src {
		return h
	}
	h.Release()
	if src == nil || src.b == nil {
		return h
	}
	h.b = src.b
	src.b = nil
	h.b.emit(EventMoved, 0)
	return h
}

// Clone gives h a private copy of the value it shares. It reports false
// and changes nothing when h is empty or already the sole owner.
// Otherwise h leaves its alias group, decrementing that group's count,
// and owns a fresh copy with a count of 1.
func (h *Handle[T]) Clone() bool {
	if h == nil || h.b == nil || h.b.refs == 1 {
		return false
	}
	old := h.b
	v := deepCopy(old.value)
	old.refs--
	h.b = &box[T]{value: v, refs: 1, observers: append([]Observer(nil), old.observers...)}
	h.b.emit(EventCloned, old.refs)
	return true
}

// RefCount returns the number of handles sharing h's value, or 0 if h is empty.
func (h *Handle[T]) RefCount() int {
	if h == nil || h.b == nil {
		return 0
	}
	return h.b.refs
}

// IsEmpty reports whether h owns no value.
func (h *Handle[T]) IsEmpty() bool {
	return h == nil || h.b == nil
}

// Shares reports whether h and o are non-empty members of the same alias group.
func (h *Handle[T]) Shares(o *Handle[T]) bool {
	return !h.IsEmpty() && !o.IsEmpty() && h.b == o.b
}

// Deref returns a pointer to the owned value for reading or writing.
// It returns an error matching ErrNullAccess if h is empty.
func (h *Handle[T]) Deref() (*T, error) {
	if h == nil || h.b == nil {
		return nil, errors.NullAccess("deref", typeName[T]())
	}
	return h.b.value, nil
}

// MustDeref is like Deref but panics on an empty handle.
func (h *Handle[T]) MustDeref() *T {
	p, err := h.Deref()
	if err != nil {
		panic(err)
	}
	return p
}

// With calls fn with a pointer to the owned value. It returns an error
// matching ErrNullAccess, without calling fn, if h is empty.
func (h *Handle[T]) With(fn func(*T)) error {
	if h == nil || h.b == nil {
		return errors.NullAccess("with", typeName[T]())
	}
	if fn != nil {
		fn(h.b.value)
	}
	return nil
}

// Release gives up h's share. When it was the last share, the value is
// finalized through Dropper if it implements it. h is empty afterwards,
// and releasing an empty handle does nothing.
func (h *Handle[T]) Release() {
	if h == nil || h.b == nil {
		return
	}
	b := h.b
	h.b = nil
	b.refs--
	b.emit(EventReleased, 0)
	if b.refs > 0 {
		return
	}
	finalize(b.value)
	b.value = nil
	b.emit(EventFreed, 0)
	b.observers = nil
}

func (b *box[T]) emit(typ EventType, left int) {
	if ce := Logger().Check(zapcore.DebugLevel, "handle "+typ.String()); ce != nil {
		fields := []zap.Field{
			zap.String("type", typeName[T]()),
			zap.Int("refs", b.refs),
		}
		if typ == EventCloned {
			fields = append(fields, zap.Int("left", left))
		}
		ce.Write(fields...)
	}
	if len(b.observers) == 0 {
		return
	}
	e := Event{
		GoType: typeName[T](),
		Refs:   b.refs,
		Left:   left,
		Type:   typ,
	}
	if b.value != nil {
		e.Value = b.value
	}
	for _, o := range b.observers {
		o.OnHandleEvent(e)
	}
}

func deepCopy[T any](p *T) *T {
	var v T
	if c, ok := any(p).(Copier[T]); ok {
		v = c.Copy()
	} else if c, ok := any(*p).(Copier[T]); ok && !isNil(*p) {
		v = c.Copy()
	} else {
		v = *p
	}
	return &v
}

func finalize[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(*p).(Dropper); ok && !isNil(*p) {
		d.Drop()
	}
}

// isNil reports whether v is a nil pointer, map, slice, func, chan or
// interface. Methods on such a value must not be called on its behalf.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
