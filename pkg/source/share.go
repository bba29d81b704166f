// Package source resolves where a wallpaper image comes from and loads it.
package source

import "strings"

// ActionSend is the only share action that carries an image.
const ActionSend = "send"

// Share is a payload handed to the application by another program, such as
// a "share to" target or a drag and drop.
type Share struct {
	Action   string
	MimeType string
	// Text holds the payload of a text share, usually a link.
	Text string
	// Stream is the URI of the shared content for binary shares.
	Stream string
}

// URI returns the location of the shared image. Text shares are treated as
// a link to the image; image shares point at their stream.
func (s Share) URI() (string, bool) {
	if s.Action != ActionSend {
		return "", false
	}
	mime := strings.ToLower(strings.TrimSpace(s.MimeType))
	switch {
	case mime == "text/plain":
		uri := strings.TrimSpace(s.Text)
		return uri, uri != ""
	case strings.HasPrefix(mime, "image/"):
		return s.Stream, s.Stream != ""
	default:
		return "", false
	}
}
