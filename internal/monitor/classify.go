package monitor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	_ "image/png"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.klb.dev/clipstash/internal/store"
)

const (
	previewLimit = 100

	imagePreview = "[Image]"
	imageTitle   = "Image Clip"

	pngDataPrefix = "data:image/png;base64,"
)

// linkPattern matches a bare URL: http(s) scheme followed by at least one
// character, with no embedded whitespace.
var linkPattern = regexp.MustCompile(`^https?://\S+$`)

// lineBreaks matches CRLF, CR and LF, in that order so CRLF counts once.
var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// TextMetadata describes a text capture.
type TextMetadata struct {
	CharCount int `json:"charCount"`
	WordCount int `json:"wordCount"`
	LineCount int `json:"lineCount"`
}

// LinkMetadata describes a link capture.
type LinkMetadata struct {
	URL string `json:"url"`
}

// ImageMetadata describes an image capture.
type ImageMetadata struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ComposeText classifies text as a link or plain text and derives preview,
// title and metadata. The title of a link is the full URL; persistence
// bounds it later.
func ComposeText(text, sourceApp, createdAt string) (store.NewClip, any) {
	preview := previewOf(text)

	contentType := store.TypeText
	title := preview
	var meta any = TextMetadata{
		CharCount: utf8.RuneCountInString(text),
		WordCount: len(strings.Fields(text)),
		LineCount: len(lineBreaks.Split(text, -1)),
	}
	if linkPattern.MatchString(text) {
		contentType = store.TypeLink
		title = text
		meta = LinkMetadata{URL: text}
	}

	return store.NewClip{
		ContentType: contentType,
		Data:        text,
		PreviewText: preview,
		Title:       title,
		SourceApp:   sourceApp,
		CreatedAt:   createdAt,
		Metadata:    marshalMeta(meta),
	}, meta
}

// ComposeImage encodes PNG bytes as a data URI and derives pixel-dimension
// metadata. A payload that fails to decode yields zero dimensions rather
// than failing the capture.
func ComposeImage(png []byte, sourceApp, createdAt string) (store.NewClip, any) {
	meta := imageMeta(png)
	return store.NewClip{
		ContentType: store.TypeImage,
		Data:        pngDataPrefix + base64.StdEncoding.EncodeToString(png),
		PreviewText: imagePreview,
		Title:       imageTitle,
		SourceApp:   sourceApp,
		CreatedAt:   createdAt,
		Metadata:    marshalMeta(meta),
	}, meta
}

func imageMeta(png []byte) ImageMetadata {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		slog.Warn("could not decode image dimensions", "err", err)
		return ImageMetadata{}
	}
	return ImageMetadata{Width: cfg.Width, Height: cfg.Height}
}

// previewOf returns the first previewLimit runes of s.
func previewOf(s string) string {
	r := []rune(s)
	if len(r) <= previewLimit {
		return s
	}
	return string(r[:previewLimit])
}

func marshalMeta(meta any) string {
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
