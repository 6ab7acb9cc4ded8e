package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wardlink/hospital-system/internal/core/ports"
)

// imageAttachment wraps the optional "file" part of a multipart request so
// handlers can pass it to the services as a ports.ImageUpload and close it
// afterwards. A nil attachment is valid and means "no file sent".
type imageAttachment struct {
	file multipart.File
	name string
}

// formImage extracts the optional profile picture from a multipart request.
// Non-multipart requests and multipart requests without a file both yield
// (nil, nil).
func formImage(c echo.Context) (*imageAttachment, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file upload")
	}
	return &imageAttachment{file: file, name: header.Filename}, nil
}

func (a *imageAttachment) upload() *ports.ImageUpload {
	if a == nil {
		return nil
	}
	return &ports.ImageUpload{Filename: a.name, Content: a.file}
}

func (a *imageAttachment) close() {
	if a != nil {
		_ = a.file.Close()
	}
}
