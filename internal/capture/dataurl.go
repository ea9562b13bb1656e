package capture

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURL packages image bytes as a data URL for transport.
func EncodeDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL into its MIME type and raw bytes. Bare
// base64 without a data: prefix is accepted and reported with an empty MIME
// type.
func DecodeDataURL(s string) (contentType string, data []byte, err error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		head, rest, ok := strings.Cut(s[len("data:"):], ",")
		if !ok {
			return "", nil, fmt.Errorf("malformed data URL")
		}
		contentType = strings.TrimSuffix(head, ";base64")
		payload = rest
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return contentType, data, nil
}
