// Package content stores uploaded file bodies and derives their metadata.
package content

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// generic sniff results that carry little information; the filename
// extension is preferred over these when it names a concrete type
var genericTypes = map[string]bool{
	"application/octet-stream": true,
	"text/plain":               true,
}

// Detector implements services.ContentDetector by sniffing the content's
// leading bytes and falling back to the filename extension when the sniffed
// type is generic.
type Detector struct{}

// NewDetector creates a content detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the media type (without parameters) and size of content
func (d *Detector) Detect(filename string, content []byte) (string, int64) {
	sniffed := baseType(mimetype.Detect(content).String())

	if genericTypes[sniffed] {
		if byExt := baseType(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))); byExt != "" {
			return byExt, int64(len(content))
		}
	}
	if sniffed == "" {
		sniffed = "application/octet-stream"
	}
	return sniffed, int64(len(content))
}

// baseType strips parameters such as "; charset=utf-8"
func baseType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}
