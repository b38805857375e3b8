// Package linebuf implements the line-oriented document model behind the
// typewriter editor.
//
// Lines are addressed by 0-based index; caret columns are 0-based grapheme
// columns within a line. The buffer never holds zero lines and never holds a
// line break inside a line.
package linebuf
