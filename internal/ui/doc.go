// Package ui contains the Bubble Tea frontend for the greeter.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, resizes, frame
//     ticks and backend updates are handled by focused functions.
//   - Key presses are matched against the bindings in keys.go and forwarded
//     to the greeter core as greeter.Key values. The greeter decides whether
//     the form was submitted or abandoned; the model then quits the program.
//   - A frameMsg tick drives the animation: the greeter draws the background
//     and the form into a cellbuf.Buffer, and View renders that buffer as
//     runs of Lip Gloss styled text with the caret overlaid.
//
// Backend interactions:
//   - A backend.Watcher streams rescans of the session directories and the
//     hostname; Update waits for those events and merges new sessions into
//     the selector without moving the current selection.
package ui
