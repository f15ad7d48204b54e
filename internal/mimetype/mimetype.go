// Package mimetype guesses the MIME type stored in a file frame.
package mimetype

import (
	"mime"
	"path/filepath"

	sniff "github.com/gabriel-vasile/mimetype"
)

// Default is used when neither the content nor the name says anything.
const Default = "application/octet-stream"

// Detect returns the MIME type for a file called name whose content starts
// with head. Content signatures win; the extension is consulted when the
// content is empty or unrecognized.
func Detect(name string, head []byte) string {
	if len(head) > 0 {
		if m := sniff.Detect(head); !m.Is(Default) {
			return m.String()
		}
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return Default
}
