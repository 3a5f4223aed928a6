package ocr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mes-labs/receipt-extractor/internal/common"
)

// image magic numbers we accept for recognition input
var imageMagics = map[string][]byte{
	"png":  {0x89, 'P', 'N', 'G'},
	"jpg":  {0xFF, 0xD8, 0xFF},
	"bmp":  {'B', 'M'},
	"tiff": {'I', 'I', 0x2A, 0x00},
	"tif":  {'M', 'M', 0x00, 0x2A},
}

// DecodeBase64Image decodes a (possibly data-URL-prefixed) base64 image into
// a temp file and returns its path plus a cleanup func. A payload that is
// not a recognizable image is the engine's one hard failure mode and is
// rejected here, before OCR ever runs.
func DecodeBase64Image(b64 string) (string, func(), error) {
	if i := strings.Index(b64, ";base64,"); i >= 0 {
		b64 = b64[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return "", nil, common.NewAppError("DECODE_ERROR", "invalid base64 image payload", common.ErrInvalidInput)
	}

	ext := sniffImageExt(data)
	if ext == "" {
		return "", nil, common.NewAppError("DECODE_ERROR", "payload is not a supported image format", common.ErrInvalidInput)
	}

	tmpDir, err := os.MkdirTemp("", "receipt-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "receipt."+ext)
	if err := os.WriteFile(out, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	return out, cleanup, nil
}

func sniffImageExt(data []byte) string {
	for ext, magic := range imageMagics {
		if bytes.HasPrefix(data, magic) {
			return ext
		}
	}
	return ""
}
