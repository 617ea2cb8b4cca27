package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/api/middleware"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// ctxSession extracts the session injected by the Session middleware. The
// role guard already keeps anonymous callers off protected routes, so a nil
// session here means a route was wired without its guard; fail closed.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}

// formFile reads an optional multipart file field into a FileUpload. A
// missing file is not an error; the upstream API treats the image as
// optional on edits.
func formFile(c echo.Context, field string) (*ports.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent part, or the request was not multipart at all.
		return nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}

	return &ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
