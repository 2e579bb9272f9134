package chatbot

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

const dataPrefix = "data:"

var errNotDataURI = errors.New("not a data URI")

// IsDataURI reports whether src is an inline "data:" chart.
func IsDataURI(src string) bool {
	return len(src) >= len(dataPrefix) && strings.EqualFold(src[:len(dataPrefix)], dataPrefix)
}

// DecodeDataURI returns the media type and payload of a data URI such as
// "data:image/png;base64,iVBOR...".
func DecodeDataURI(src string) (string, []byte, error) {
	if !IsDataURI(src) {
		return "", nil, errNotDataURI
	}
	du, err := dataurl.DecodeString(normalizeDataURI(src))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return strings.ToLower(du.ContentType()), du.Data, nil
}

// normalizeDataURI lowercases the scheme and restores base64 padding that
// some encoders drop.
func normalizeDataURI(src string) string {
	src = dataPrefix + src[len(dataPrefix):]
	header, payload, ok := strings.Cut(src, ",")
	if !ok || !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return src
	}
	payload = strings.TrimRight(payload, "=")
	if n := len(payload) % 4; n != 0 {
		payload += strings.Repeat("=", 4-n)
	}
	return header + "," + payload
}

// DataURIExtension picks a file extension for a decoded media type.
func DataURIExtension(mediaType string) string {
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	_, subtype, _ := strings.Cut(mediaType, "/")
	for _, ext := range exts {
		if ext == "."+subtype {
			return ext
		}
	}
	return exts[0]
}
