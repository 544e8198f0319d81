package tui

import "github.com/atotto/clipboard"

// Clipboard receives copied secrets.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard. On Linux it needs xclip,
// xsel or wl-clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
