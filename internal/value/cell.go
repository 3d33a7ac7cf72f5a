// Package value holds the observable single-value cells that back selection
// widgets and any component that depends on a committed choice.
package value

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// Key is an opaque, stable identifier for a selectable record.
type Key string

// IntKey converts a numeric identifier to a Key.
func IntKey(id int64) Key {
	return Key(strconv.FormatInt(id, 10))
}

// Int parses the key as a decimal identifier.
func (k Key) Int() (int64, error) {
	return strconv.ParseInt(string(k), 10, 64)
}

func (k Key) String() string {
	return string(k)
}

// Option pairs a key with its display label.
type Option struct {
	Key   Key
	Label string
}

// ErrUnknownOption is returned when a value is set for a key the cell has no
// option for.
var ErrUnknownOption = errors.New("value: no option for key")

// Observer reacts to a change of the cell's value. Observers may return a
// command to run asynchronously.
type Observer func(Key) tea.Cmd

type subscription struct {
	id int
	fn Observer
}

// Cell is the authoritative holder of one selected value and the option set it
// may be chosen from. It is not safe for concurrent use; it is owned by the UI
// event loop.
type Cell struct {
	options   []Option
	value     Key
	set       bool
	observers []subscription
	nextID    int
}

// NewCell returns an empty cell.
func NewCell() *Cell {
	return &Cell{}
}

// Reset replaces the option set and clears the current value. Observers are
// kept.
func (c *Cell) Reset(options []Option) {
	c.options = CloneOptions(options)
	c.value = ""
	c.set = false
}

// Options returns a copy of the registered options in registration order.
func (c *Cell) Options() []Option {
	return CloneOptions(c.options)
}

// Option looks up the option registered for key. When duplicates exist the
// last registered option wins.
func (c *Cell) Option(key Key) (Option, bool) {
	for i := len(c.options) - 1; i >= 0; i-- {
		if c.options[i].Key == key {
			return c.options[i], true
		}
	}
	return Option{}, false
}

// HasOption reports whether an option exists for key.
func (c *Cell) HasOption(key Key) bool {
	_, ok := c.Option(key)
	return ok
}

// AddOption appends an option.
func (c *Cell) AddOption(opt Option) {
	c.options = append(c.options, opt)
}

// Select sets the current value without notifying observers. The key must
// already have an option.
func (c *Cell) Select(key Key) error {
	if !c.HasOption(key) {
		return ErrUnknownOption
	}
	c.value = key
	c.set = true
	return nil
}

// Clear removes the current value without notifying observers.
func (c *Cell) Clear() {
	c.value = ""
	c.set = false
}

// Value returns the current value and whether one is set.
func (c *Cell) Value() (Key, bool) {
	return c.value, c.set
}

// Selected returns the option matching the current value.
func (c *Cell) Selected() (Option, bool) {
	if !c.set {
		return Option{}, false
	}
	return c.Option(c.value)
}

// Subscribe registers an observer and returns a function that removes it.
func (c *Cell) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range c.observers {
			if sub.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers reports the number of registered observers.
func (c *Cell) Observers() int {
	return len(c.observers)
}

// Notify invokes every observer with the current value, in subscription
// order, and batches the commands they return. An observer that panics is
// skipped and reported through the returned error; the remaining observers
// still run.
func (c *Cell) Notify() (tea.Cmd, error) {
	if len(c.observers) == 0 {
		return nil, nil
	}
	subs := make([]subscription, len(c.observers))
	copy(subs, c.observers)
	cmds := make([]tea.Cmd, 0, len(subs))
	var errs []error
	for _, sub := range subs {
		cmd, err := invoke(sub.fn, c.value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...), errors.Join(errs...)
}

func invoke(fn Observer, key Key) (cmd tea.Cmd, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn(key), nil
}

// PanicError wraps a value recovered from a panicking observer or callback.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// CloneOptions produces a shallow copy of the provided options.
func CloneOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	dup := make([]Option, len(opts))
	copy(dup, opts)
	return dup
}
