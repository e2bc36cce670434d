package controller

import (
	"io"

	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/serverutils"
	"ai-salesagent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	CreateKnowledgeBase(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.CreateKnowledgeBase)
	h.Post(":id/documents", c.UploadDocument)
	h.Get(":id/documents", c.ListDocuments)
}

func (c *knowledgeController) CreateKnowledgeBase(ctx *fiber.Ctx) error {
	ownerId, err := operatorID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateKnowledgeBaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateKnowledgeBase(ctx.UserContext(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create knowledge base", res))
}

func (c *knowledgeController) UploadDocument(ctx *fiber.Ctx) error {
	ownerId, err := operatorID(ctx)
	if err != nil {
		return err
	}

	kbId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid knowledge base id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.InvalidInput("file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.InvalidInput("unreadable file")
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return apperrors.InvalidInput("unreadable file")
	}

	res, err := c.knowledgeService.UploadDocument(ctx.UserContext(), ownerId, kbId, fileHeader.Filename, raw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document queued for ingestion", res))
}

func (c *knowledgeController) ListDocuments(ctx *fiber.Ctx) error {
	ownerId, err := operatorID(ctx)
	if err != nil {
		return err
	}

	kbId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid knowledge base id")
	}

	res, err := c.knowledgeService.ListDocuments(ctx.UserContext(), ownerId, kbId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func operatorID(ctx *fiber.Ctx) (uuid.UUID, error) {
	idStr, ok := ctx.Locals("operator_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}
