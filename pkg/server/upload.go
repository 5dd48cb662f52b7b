package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"promptengine/pkg/keywords"
	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

type keywordsReq struct {
	Filename       string `json:"filename"`
	FileSize       int64  `json:"file_size"`
	ContentPreview string `json:"content_preview"`
}

// POST /api/upload/keywords
//
// Accepts either a multipart "file" field or a JSON body with a content preview.
func (s *Server) handlePostKeywords(c echo.Context) error {
	var req keywordsReq
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "missing file")
		}
		if fh.Size > s.maxUpload {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
		}
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, s.maxUpload))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
		}
		req = keywordsReq{Filename: fh.Filename, FileSize: fh.Size, ContentPreview: string(data)}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	req.Filename = utils.SanitizeFilename(req.Filename)
	if req.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "filename is required")
	}

	resp := schema.KeywordsResponse{
		Filename: req.Filename,
		Keywords: keywords.Extract(req.ContentPreview),
	}
	if s.Store != nil {
		doc, err := s.Store.AddDocument(req.Filename, req.FileSize, resp.Keywords)
		if err != nil {
			log.Warn("failed saving uploaded document", "filename", req.Filename, "error", err)
		} else {
			resp.DocumentID = doc.ID
		}
	}
	return c.JSON(http.StatusOK, resp)
}
