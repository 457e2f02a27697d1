// Package terminal provides scoped terminal acquisition and frame output for the donut renderer.
//
// Features:
//   - Raw mode that keeps signal generation, so Ctrl-C still raises SIGINT
//   - Alternate screen, hidden non-blinking cursor, auto-wrap off for the whole session
//   - Cell-level diffing against the previously flushed frame
//   - SIGWINCH forces a full redraw
//   - Clean terminal restoration on exit and, via EmergencyReset, on panic
//
// Two backends implement Terminal: the default direct-ANSI one (New) and a
// tcell screen (NewTcell) for terminals where raw escape output misbehaves.
package terminal
