package ocr

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
)

// EncodedImage is the transient payload handed from the image fetcher to
// the vision client: base64 card-photo bytes plus their MIME type. It is
// consumed once per scan and never cached.
type EncodedImage struct {
	Data     string
	MIMEType string
}

// FetchImage retrieves a card photo by URL and base64-encodes it for the
// vision request. The response must be a non-empty image/* payload.
func FetchImage(ctx context.Context, client *http.Client, imageURL string) (EncodedImage, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return EncodedImage{}, &NetworkError{URL: imageURL, Err: err}
	}
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return EncodedImage{}, &NetworkError{URL: imageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return EncodedImage{}, &InvalidResponseError{URL: imageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return EncodedImage{}, &NetworkError{URL: imageURL, Err: err}
	}
	if len(body) == 0 {
		return EncodedImage{}, ErrEmptyContent
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mimeType, ';'); i != -1 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "image/") {
		return EncodedImage{}, ErrUnsupportedType
	}

	return EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(body),
		MIMEType: mimeType,
	}, nil
}
