package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

type LetterHandler struct {
	letters  services.LetterService
	packages services.PackageService
}

func NewLetterHandler(letters services.LetterService, packages services.PackageService) *LetterHandler {
	return &LetterHandler{
		letters:  letters,
		packages: packages,
	}
}

// HandleCoverLetter handles POST /jobs/:id/cover-letter. The body is optional.
func (h *LetterHandler) HandleCoverLetter(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req models.CoverLetterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request payload")
		}
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if req.TemplateStyle == "" {
		req.TemplateStyle = letter.StyleAuto
	}

	generated, err := h.letters.Generate(c.UserContext(), id, services.LetterRequest{
		Style:         req.TemplateStyle,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		return respondError(c, err)
	}

	resp := models.CoverLetterResponse{
		DocumentID:   generated.Document.ID.String(),
		Style:        generated.Letter.Style,
		AutoSelected: generated.Letter.AutoSelected,
		FilePath:     generated.Document.FilePath,
		Content:      generated.Letter.FullText,
	}
	if generated.Docx != nil {
		resp.DocxPath = generated.Docx.FilePath
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleStyles handles GET /letter-styles
func (h *LetterHandler) HandleStyles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"styles": append([]string{letter.StyleAuto}, h.letters.Styles()...),
	})
}

// HandlePackage handles POST /jobs/:id/package
func (h *LetterHandler) HandlePackage(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.packages.CreatePackage(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.PackageResponse{
		FolderPath: result.FolderPath,
		Documents:  result.Documents,
	})
}

// HandleLinks handles GET /jobs/:id/links
func (h *LetterHandler) HandleLinks(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	links, err := h.packages.ShareableLinks(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"job_id": id.String(),
		"links":  links,
	})
}
