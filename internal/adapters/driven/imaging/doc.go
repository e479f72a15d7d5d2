// Package imaging implements the image acquisition port for a terminal.
//
// LibraryPicker offers the images in a directory to a Chooser, which may be
// a numbered terminal prompt, a fixed path, or the TUI. Camera either runs
// a capture command with {output} replaced by a fresh file name, or waits
// for a new image to land in an inbox directory (a phone sync folder, a
// webcam tool's output dir). Acquirer joins the two behind one port.
package imaging
