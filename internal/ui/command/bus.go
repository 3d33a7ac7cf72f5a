package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/stockroom/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a store operation issued from the UI.
type Request struct {
	ID    string
	Label string
	Run   func(context.Context) tea.Msg
}

// Bus coordinates the execution of store operations.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus instance. Requests run under ctx, or under a
// background context when ctx is nil.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	ctx := b.ctx
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run(ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
