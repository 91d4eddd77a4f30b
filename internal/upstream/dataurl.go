package upstream

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// encodes an image as an inline data URL
func DataURL(img *Image) string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Bytes)
}

// decodes a base64 data URL back into its MIME type and bytes
func DecodeDataURL(url string) (*Image, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data url")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data url has no payload")
	}

	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("data url is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data url: %w", err)
	}

	return &Image{Bytes: data, MIME: mime}, nil
}
