package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"spendlens/internal/errors"
	"spendlens/internal/services"
	"spendlens/internal/validation"

	"github.com/labstack/echo/v4"
)

// ImportHandler handles CSV upload requests
type ImportHandler struct {
	importService services.ImportServiceInterface
	maxUploadSize int64
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService services.ImportServiceInterface, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadCSV ingests one bank-export CSV from a multipart form
// @Summary Upload a CSV export
// @Description Parse and store a headerless bank export. Malformed rows are skipped and reported; duplicates of already-stored rows are counted, not re-inserted.
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV export file"
// @Success 200 {object} SuccessResponse{data=models.ImportReport} "Import report"
// @Failure 400 {object} errors.ErrorResponse "IMPORT_001 - Missing file or IMPORT_003 - Empty file"
// @Failure 422 {object} errors.ErrorResponse "IMPORT_002 - File could not be read"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/v1/imports [post]
func (h *ImportHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.ImportMissingFile)
	}

	if err := validation.GetValidator().GetValidate().Var(fileHeader.Filename, "csv_filename"); err != nil {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("file: must be a .csv export"))
	}

	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		return SendError(c, errors.ValidationOutOfRange,
			errors.WithDetails(fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadSize)))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendError(c, errors.ImportUnreadable)
	}
	defer file.Close()

	slog.Info("csv upload received",
		"file", fileHeader.Filename,
		"size", fileHeader.Size,
		"client_ip", getClientIP(c))

	report, err := h.importService.ImportCSV(fileHeader.Filename, file)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrEmptyFile):
			return SendError(c, errors.ImportEmptyFile)
		case stderrors.Is(err, services.ErrUnreadableFile):
			return SendError(c, errors.ImportUnreadable)
		default:
			return SendSystemError(c, err)
		}
	}

	message := "Import completed"
	if report.HasRejections() {
		message = "Import completed with rejected rows"
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    report,
		Message: message,
	})
}
