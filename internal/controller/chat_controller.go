package controller

import (
	"bufio"
	"context"
	"encoding/json"

	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/pkg/serverutils"
	"ai-salesagent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StreamChat(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
}

type chatController struct {
	conversationService service.IConversationService
	log                 logger.ILogger
}

func NewChatController(conversationService service.IConversationService, log logger.ILogger) IChatController {
	return &chatController{
		conversationService: conversationService,
		log:                 log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("stream", c.StreamChat)
	h.Post("send", c.SendChat)

	// Operator-facing transcript endpoint
	t := r.Group("/chat/v1", serverutils.JwtMiddleware)
	t.Get("transcript/:demoId", c.GetTranscript)
}

// StreamChat is the web chat entry point. The whole exchange runs inside the
// body stream writer; every outcome, including failures, arrives as an SSE
// frame so the client has one protocol to parse.
func (c *chatController) StreamChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	in := &service.Inbound{
		DemoId:         req.DemoId,
		Identifier:     req.Identifier,
		IdentifierType: identifierTypeOf(req.Identifier),
		Channel:        entity.ChannelWeb,
		Message:        req.Message,
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		emit := func(fragment string) error {
			if err := writeSSE(w, dto.StreamEvent{Fragment: fragment}); err != nil {
				// Client is gone; cancel tears down the provider stream.
				cancel()
				return err
			}
			return nil
		}

		_, err := c.conversationService.StreamChat(streamCtx, in, emit)
		if err != nil {
			if streamCtx.Err() != nil {
				return
			}
			code := apperrors.CodeOf(err)
			message := "something went wrong"
			switch code {
			case apperrors.CodeInvalidInput, apperrors.CodeNotFound, apperrors.CodeExpired,
				apperrors.CodeBudgetExceeded, apperrors.CodeRateLimited:
				message = err.Error()
			default:
				c.log.Error("chat", "stream failed", map[string]interface{}{
					"demo_id": req.DemoId.String(),
					"error":   err.Error(),
				})
			}
			writeSSE(w, dto.StreamEvent{Error: message, ErrorType: string(code)})
			return
		}

		writeSSE(w, dto.StreamEvent{Done: true})
	}))

	return nil
}

// SendChat is the synchronous web endpoint for clients that cannot consume
// SSE.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	in := &service.Inbound{
		DemoId:         req.DemoId,
		Identifier:     req.Identifier,
		IdentifierType: identifierTypeOf(req.Identifier),
		Channel:        entity.ChannelWeb,
		Message:        req.Message,
	}

	exchange, err := c.conversationService.SendChat(ctx.UserContext(), in)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", dto.SendChatResponse{
		SessionId:  exchange.Session.Id,
		LeadId:     exchange.Lead.Id,
		Reply:      exchange.Reply,
		TokenCount: exchange.TokenCount,
	}))
}

func (c *chatController) GetTranscript(ctx *fiber.Ctx) error {
	demoId, err := uuid.Parse(ctx.Params("demoId"))
	if err != nil {
		return apperrors.InvalidInput("invalid demo id")
	}
	identifier := ctx.Query("identifier")
	if identifier == "" {
		return apperrors.InvalidInput("identifier query parameter is required")
	}

	res, err := c.conversationService.GetTranscript(ctx.UserContext(), demoId, identifier, identifierTypeOf(identifier))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}

func writeSSE(w *bufio.Writer, event dto.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: " + string(data) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

// identifierTypeOf tags a raw web identifier. Web clients may pass an email,
// a phone number, or an opaque anonymous token.
func identifierTypeOf(identifier string) entity.IdentifierType {
	for _, r := range identifier {
		if r == '@' {
			return entity.IdentifierEmail
		}
	}
	if len(identifier) > 0 && (identifier[0] == '+' || (identifier[0] >= '0' && identifier[0] <= '9')) {
		digits := 0
		for _, r := range identifier {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return entity.IdentifierPhone
		}
	}
	return entity.IdentifierAnonymous
}
