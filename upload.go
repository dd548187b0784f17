package mindtile

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// processImage decodes an image, downscales anything wider than
// maxImageWidth, and re-encodes as JPEG. Shrinking before the upload keeps
// asset-host bandwidth and reader page weight down.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// handleImageUpload pre-processes an uploaded image and pushes it to the
// asset host through the API's signed-upload flow. Responds with the public
// URL for the builder's image form to adopt.
func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	filename := uploadFilename(file.Filename)
	url := a.API.UploadImage(c.Request().Context(), filename, data)
	if url == "" {
		return c.String(http.StatusBadGateway, "Upload failed")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// uploadFilename slugs the original name and fixes the extension to the
// JPEG the pre-processing produced.
func uploadFilename(original string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	slug := Slugify(base)
	if slug == "" {
		slug = "image"
	}
	return slug + ".jpg"
}
