// Package ui contains the Bubble Tea program behind the inventory console.
// Model focuses on message orchestration while dedicated files own the
// dashboard, the task forms, key and pointer input, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Store reads and writes run as tea.Cmd values issued through the
//     internal/ui/command bus. Their results come back as messages carrying
//     enough identity (a table request id and offset, or a task generation)
//     for the handler to drop responses that no longer match the screen.
//
// State ownership:
//   - Each dashboard table is an internal/ui/pager.Table, which owns its page
//     state and decides whether a completion is current.
//   - The open task is a taskView built from a task.Definition. Its select
//     fields are internal/ui/widget.Widget values bound to value cells, and
//     every live widget is registered with a widget.Registry so a press
//     anywhere on screen can close the lists it falls outside of.
//   - Toasts live in an internal/ui/notify.Center and dismiss themselves.
//
// Rendering:
//   - buildFrame lays the screen out once per View and records the clickable
//     zones. Mouse presses rebuild the same frame to hit-test, so what is drawn
//     and what is clickable cannot drift apart.
//
// Backend interactions:
//   - A backend.Watcher polls the dashboard metrics; Update waits for those
//     events and hands them to the dispatcher, which keeps the metrics store
//     current.
package ui
