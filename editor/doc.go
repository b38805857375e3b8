// Package editor provides a Bubble Tea typewriter editor component backed by
// the linebuf package.
//
// The package renders one styled row per buffer line, measures rendered row
// heights back into the buffer, forwards key and text events to an
// input.Router, and in typewriter mode keeps the focused line vertically
// centered through a scroll.Controller.
package editor
