package utils

import (
	"mime"
	"net/http"
	"strings"
)

// UnknownMimeType is reported when no content type can be determined.
const UnknownMimeType = "application/octet-stream"

const sniffLen = 512

// DetectMimeType returns the MIME type of data, preferring the registered type
// for the extension of fileName over content sniffing.
func DetectMimeType(fileName string, data []byte) string {
	if extensionType := mime.TypeByExtension("." + FileExtension(fileName)); extensionType != "" {
		return extensionType
	}
	if len(data) == 0 {
		return UnknownMimeType
	}
	sniffed := data
	if len(sniffed) > sniffLen {
		sniffed = sniffed[:sniffLen]
	}
	return http.DetectContentType(sniffed)
}

// BaseMimeType strips parameters such as charset from a MIME type.
func BaseMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}
