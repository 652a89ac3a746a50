package http

import (
	"errors"
	"io"
	"strings"

	"resume-builder/internal/adapter/textextract"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	session   *usecase.Session
	processor *usecase.Processor
	gatherer  prometheus.Gatherer
}

// NewHandler wires the session and export pipeline. gatherer may be nil,
// in which case /metrics is not served.
func NewHandler(s *usecase.Session, p *usecase.Processor, gatherer prometheus.Gatherer) *Handler {
	return &Handler{session: s, processor: p, gatherer: gatherer}
}

// Register attaches every route to r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	if h.gatherer != nil {
		r.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	res := r.Group("/resume")
	res.Get("/", h.GetState)
	res.Post("/reset", h.Reset)
	res.Put("/fields/:field", h.SetField)
	res.Put("/presentation", h.SetPresentation)

	res.Post("/lists/:list", h.AddEntry)
	res.Patch("/lists/:list/:id", h.UpdateEntry)
	res.Delete("/lists/:list/:id", h.RemoveEntry)
	res.Post("/lists/:list/:id/move", h.MoveEntry)

	res.Post("/tags/:list", h.AddTag)
	res.Delete("/tags/:list/:index", h.RemoveTag)
	res.Post("/tags/:list/:index/move", h.MoveTag)

	res.Post("/step/next", h.NextStep)
	res.Post("/step/back", h.BackStep)

	res.Get("/sections", h.Sections)
	res.Put("/sections/order", h.SetSectionOrder)
	res.Post("/sections/:id/move", h.MoveSection)
	res.Put("/sections/:id/visibility", h.SetSectionVisibility)

	res.Post("/experience/:id/suggestions/toggle", h.ToggleSuggestions)
	res.Get("/experience/:id/suggestions", h.Suggestions)
	res.Post("/experience/:id/suggestions/apply", h.ApplySuggestion)

	r.Post("/keywords", h.Keywords)
	r.Post("/keywords/file", h.KeywordsFile)

	r.Get("/export", h.ExportJSON)
	r.Post("/import", h.Import)
	r.Get("/export/html", h.ExportHTML)
	r.Get("/export/markdown", h.ExportMarkdown)
	r.Get("/export/pdf", h.ExportPDF)
}

// param copies a route parameter out of fasthttp's reusable buffer.
func param(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}

func (h *Handler) update(c *fiber.Ctx, fn func(*usecase.Editor) error) error {
	if err := h.session.Update(fn); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(h.session.State())
}

func (h *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(h.session.State())
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	return c.JSON(h.session.Reset())
}

type valueReq struct {
	Value string `json:"value"`
}

func (h *Handler) SetField(c *fiber.Ctx) error {
	var req valueReq
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
	}
	field := param(c, "field")
	return h.update(c, func(e *usecase.Editor) error { return e.SetField(field, req.Value) })
}

type presentationReq struct {
	Template    *string `json:"template"`
	Font        *string `json:"font"`
	AccentColor *string `json:"accentColor"`
}

func (h *Handler) SetPresentation(c *fiber.Ctx) error {
	var req presentationReq
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
	}
	return h.update(c, func(e *usecase.Editor) error {
		if req.Template != nil {
			e.SetTemplate(model.Template(*req.Template))
		}
		if req.Font != nil && strings.TrimSpace(*req.Font) != "" {
			e.SetFont(strings.TrimSpace(*req.Font))
		}
		if req.AccentColor != nil && strings.TrimSpace(*req.AccentColor) != "" {
			e.SetAccentColor(strings.TrimSpace(*req.AccentColor))
		}
		return nil
	})
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	list := model.SectionID(param(c, "list"))
	var id string
	err := h.session.Update(func(e *usecase.Editor) error {
		var err error
		id, err = e.AddEntry(list)
		return err
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "state": h.session.State()})
}

type entryFieldReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	var req entryFieldReq
	if err := c.BodyParser(&req); err != nil || req.Key == "" {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "key is required")
	}
	list, id := model.SectionID(param(c, "list")), param(c, "id")
	return h.update(c, func(e *usecase.Editor) error { return e.UpdateEntry(list, id, req.Key, req.Value) })
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	list, id := model.SectionID(param(c, "list")), param(c, "id")
	return h.update(c, func(e *usecase.Editor) error { return e.RemoveEntry(list, id) })
}

type directionReq struct {
	Direction int `json:"direction"`
}

func parseDirection(c *fiber.Ctx) (int, bool) {
	var req directionReq
	if err := c.BodyParser(&req); err != nil {
		return 0, false
	}
	return req.Direction, req.Direction == -1 || req.Direction == 1
}

func (h *Handler) MoveEntry(c *fiber.Ctx) error {
	dir, ok := parseDirection(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_DIRECTION", "direction must be -1 or 1")
	}
	list, id := model.SectionID(param(c, "list")), param(c, "id")
	return h.update(c, func(e *usecase.Editor) error { return e.MoveEntry(list, id, dir) })
}

func (h *Handler) AddTag(c *fiber.Ctx) error {
	var req valueReq
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
	}
	list := model.SectionID(param(c, "list"))
	return h.update(c, func(e *usecase.Editor) error {
		_, err := e.AddTag(list, req.Value)
		return err
	})
}

func (h *Handler) RemoveTag(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
	}
	list := model.SectionID(param(c, "list"))
	return h.update(c, func(e *usecase.Editor) error { return e.RemoveTag(list, index) })
}

func (h *Handler) MoveTag(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
	}
	dir, ok := parseDirection(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_DIRECTION", "direction must be -1 or 1")
	}
	list := model.SectionID(param(c, "list"))
	return h.update(c, func(e *usecase.Editor) error { return e.MoveTag(list, index, dir) })
}

func (h *Handler) NextStep(c *fiber.Ctx) error {
	return c.JSON(h.session.Next())
}

func (h *Handler) BackStep(c *fiber.Ctx) error {
	return c.JSON(h.session.Back())
}

func (h *Handler) Sections(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"sections": h.session.Sections()})
}

type sectionOrderReq struct {
	Order []model.SectionID `json:"order"`
}

func (h *Handler) SetSectionOrder(c *fiber.Ctx) error {
	var req sectionOrderReq
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
	}
	return h.update(c, func(e *usecase.Editor) error { return e.SetSectionOrder(req.Order) })
}

func (h *Handler) MoveSection(c *fiber.Ctx) error {
	dir, ok := parseDirection(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_DIRECTION", "direction must be -1 or 1")
	}
	id := model.SectionID(param(c, "id"))
	return h.update(c, func(e *usecase.Editor) error { return e.MoveSection(id, dir) })
}

type visibilityReq struct {
	Visible *bool `json:"visible"`
}

func (h *Handler) SetSectionVisibility(c *fiber.Ctx) error {
	var req visibilityReq
	if err := c.BodyParser(&req); err != nil || req.Visible == nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "visible is required")
	}
	id := model.SectionID(param(c, "id"))
	return h.update(c, func(e *usecase.Editor) error { return e.SetSectionVisible(id, *req.Visible) })
}

func (h *Handler) ToggleSuggestions(c *fiber.Ctx) error {
	id := param(c, "id")
	var shown bool
	err := h.session.Update(func(e *usecase.Editor) error {
		var err error
		shown, err = e.ToggleSuggestions(id)
		return err
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "shown": shown})
}

func (h *Handler) Suggestions(c *fiber.Ctx) error {
	id := param(c, "id")
	exp, shown, err := h.session.Experience(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !shown {
		return c.JSON(fiber.Map{"id": id, "shown": false, "suggestions": []string{}})
	}
	out, err := h.processor.Suggestions(c.UserContext(), exp)
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, "SUGGESTIONS_UNAVAILABLE", "suggestion service unavailable")
	}
	return c.JSON(fiber.Map{"id": id, "shown": true, "suggestions": out})
}

type applyReq struct {
	Text string `json:"text"`
}

func (h *Handler) ApplySuggestion(c *fiber.Ctx) error {
	var req applyReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "text is required")
	}
	id := param(c, "id")
	return h.update(c, func(e *usecase.Editor) error { return e.ApplySuggestion(id, req.Text) })
}

type keywordsReq struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) Keywords(c *fiber.Ctx) error {
	var req keywordsReq
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
	}
	return c.JSON(fiber.Map{"missing": h.session.MissingKeywords(req.JobDescription)})
}

func (h *Handler) KeywordsFile(c *fiber.Ctx) error {
	data, mimeType, err := readUpload(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	text, err := textextract.Extract(mimeType, data)
	if errors.Is(err, textextract.ErrUnsupportedType) {
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "only txt, pdf and docx files are supported")
	}
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "UNREADABLE_FILE", "cannot read uploaded file")
	}
	return c.JSON(fiber.Map{"missing": h.session.MissingKeywords(text)})
}

// readUpload reads the multipart "file" field.
func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, textextract.DetectMime(fh.Filename, fh.Header.Get(fiber.HeaderContentType)), nil
}

func (h *Handler) ExportJSON(c *fiber.Ctx) error {
	data, err := h.session.Export()
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.json"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Import accepts a snapshot as the raw body or as a multipart "file". A
// payload that cannot be applied leaves the session untouched and still
// answers 200.
func (h *Handler) Import(c *fiber.Ctx) error {
	raw := c.Body()
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		data, _, err := readUpload(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		raw = data
	}
	applied := h.session.Import(raw)
	return c.JSON(fiber.Map{"applied": applied, "state": h.session.State()})
}

func (h *Handler) ExportHTML(c *fiber.Ctx) error {
	html, err := h.processor.RenderHTML(h.session.Snapshot())
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) ExportMarkdown(c *fiber.Ctx) error {
	md, err := h.processor.RenderMarkdown(h.session.Snapshot())
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.md"`)
	return c.SendString(md)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.processor.ExportPDF(c.UserContext(), h.session.Snapshot())
	if err != nil {
		// the document is untouched; the client may simply retry
		return writeError(c, fiber.StatusBadGateway, "RENDER_FAILED", "pdf rendering failed")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdf)
}
