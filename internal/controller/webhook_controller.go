package controller

import (
	"context"
	"strings"
	"time"

	"ai-salesagent-be/internal/dto"
	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/service"
	"ai-salesagent-be/pkg/mailer"
	"ai-salesagent-be/pkg/twiml"

	"github.com/gofiber/fiber/v2"
)

const apologyMessage = "Sorry, we're having trouble responding right now. Please try again in a moment."

// IWebhookController hosts the synchronous channel adapters. Every handler
// completes the provider's handshake with a 200 regardless of internal
// failures, so Twilio and the mail provider never retry because of us.
type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	InboundSMS(ctx *fiber.Ctx) error
	InboundVoice(ctx *fiber.Ctx) error
	InboundEmail(ctx *fiber.Ctx) error
}

type webhookController struct {
	conversationService service.IConversationService
	mailer              *mailer.Mailer
	log                 logger.ILogger
	twilioAuthToken     string
}

func NewWebhookController(conversationService service.IConversationService, m *mailer.Mailer, log logger.ILogger, twilioAuthToken string) IWebhookController {
	return &webhookController{
		conversationService: conversationService,
		mailer:              m,
		log:                 log,
		twilioAuthToken:     twilioAuthToken,
	}
}

// verifiedTwilio checks the request signature when an auth token is
// configured; without one the check is skipped so local setups keep working.
func (c *webhookController) verifiedTwilio(ctx *fiber.Ctx) bool {
	if c.twilioAuthToken == "" {
		return true
	}
	params := make(map[string]string)
	ctx.Request().PostArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})
	url := ctx.Protocol() + "://" + ctx.Hostname() + ctx.OriginalURL()
	return twiml.ValidateSignature(c.twilioAuthToken, url, params, ctx.Get("X-Twilio-Signature"))
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("sms", c.InboundSMS)
	h.Post("voice", c.InboundVoice)
	h.Post("email", c.InboundEmail)
}

func (c *webhookController) InboundSMS(ctx *fiber.Ctx) error {
	if !c.verifiedTwilio(ctx) {
		c.log.Warn("webhook", "rejected sms with bad twilio signature", map[string]interface{}{"path": ctx.Path()})
		return ctx.SendStatus(fiber.StatusForbidden)
	}

	var req dto.TwilioSMSWebhook
	if err := ctx.BodyParser(&req); err != nil || req.From == "" || req.To == "" || req.Body == "" {
		return renderTwiML(ctx, twiml.SMSReply(apologyMessage))
	}

	demo, err := c.conversationService.FindDemoByPhoneNumber(ctx.UserContext(), req.To)
	if err != nil || demo == nil {
		c.log.Warn("webhook", "sms for unknown number", map[string]interface{}{"to": req.To})
		return renderTwiML(ctx, twiml.SMSReply("This number is not in service."))
	}

	exchange, err := c.conversationService.SendChat(ctx.UserContext(), &service.Inbound{
		DemoId:         demo.Id,
		Identifier:     req.From,
		IdentifierType: entity.IdentifierPhone,
		Channel:        entity.ChannelSMS,
		Message:        req.Body,
	})
	if err != nil {
		c.log.Error("webhook", "sms exchange failed", map[string]interface{}{
			"demo_id": demo.Id.String(),
			"error":   err.Error(),
		})
		return renderTwiML(ctx, twiml.SMSReply(apologyMessage))
	}

	return renderTwiML(ctx, twiml.SMSReply(exchange.Reply))
}

func (c *webhookController) InboundVoice(ctx *fiber.Ctx) error {
	if !c.verifiedTwilio(ctx) {
		c.log.Warn("webhook", "rejected voice call with bad twilio signature", map[string]interface{}{"path": ctx.Path()})
		return ctx.SendStatus(fiber.StatusForbidden)
	}

	var req dto.TwilioVoiceWebhook
	if err := ctx.BodyParser(&req); err != nil || req.From == "" || req.To == "" {
		return renderTwiML(ctx, twiml.VoiceGoodbye(apologyMessage))
	}

	demo, err := c.conversationService.FindDemoByPhoneNumber(ctx.UserContext(), req.To)
	if err != nil || demo == nil {
		// No lead or session is created for an unclaimed number.
		return renderTwiML(ctx, twiml.VoiceGoodbye("Sorry, this number is not assigned to an active agent. Goodbye."))
	}

	gatherAction := "/api/webhook/v1/voice"

	// First leg of the call carries no speech yet; greet and listen.
	if req.SpeechResult == "" && req.Digits == "" {
		greeting := "Hello, you've reached " + demo.CompanyName + ". How can I help you today?"
		return renderTwiML(ctx, twiml.VoiceReply(greeting, gatherAction))
	}

	input := req.SpeechResult
	if input == "" {
		input = req.Digits
	}

	exchange, err := c.conversationService.SendChat(ctx.UserContext(), &service.Inbound{
		DemoId:         demo.Id,
		Identifier:     req.From,
		IdentifierType: entity.IdentifierPhone,
		Channel:        entity.ChannelVoice,
		Message:        input,
	})
	if err != nil {
		c.log.Error("webhook", "voice exchange failed", map[string]interface{}{
			"demo_id": demo.Id.String(),
			"error":   err.Error(),
		})
		return renderTwiML(ctx, twiml.VoiceGoodbye(apologyMessage))
	}

	return renderTwiML(ctx, twiml.VoiceReply(exchange.Reply, gatherAction))
}

// InboundEmail acknowledges immediately and answers out-of-band: the reply
// goes back over SMTP, not in the webhook response.
func (c *webhookController) InboundEmail(ctx *fiber.Ctx) error {
	var req dto.InboundEmailWebhook
	if err := ctx.BodyParser(&req); err != nil || req.From == "" || req.To == "" || req.Text == "" {
		c.log.Warn("webhook", "malformed inbound email", map[string]interface{}{"error": "missing fields"})
		return ctx.SendStatus(fiber.StatusOK)
	}

	shortCode := emailLocalPart(req.To)
	demo, err := c.conversationService.FindDemoByShortCode(ctx.UserContext(), shortCode)
	if err != nil || demo == nil {
		c.log.Warn("webhook", "email for unknown short code", map[string]interface{}{"to": req.To})
		return ctx.SendStatus(fiber.StatusOK)
	}

	go func(req dto.InboundEmailWebhook, demoId string) {
		bg, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		exchange, err := c.conversationService.SendChat(bg, &service.Inbound{
			DemoId:         demo.Id,
			Identifier:     req.From,
			IdentifierType: entity.IdentifierEmail,
			Channel:        entity.ChannelEmail,
			Message:        req.Text,
		})
		if err != nil {
			c.log.Error("webhook", "email exchange failed", map[string]interface{}{
				"demo_id": demoId,
				"error":   err.Error(),
			})
			return
		}

		if c.mailer == nil {
			c.log.Warn("webhook", "no mailer configured, dropping email reply", map[string]interface{}{"demo_id": demoId})
			return
		}
		if err := c.mailer.SendReply(req.From, req.Subject, exchange.Reply); err != nil {
			c.log.Error("webhook", "email reply delivery failed", map[string]interface{}{
				"demo_id": demoId,
				"error":   err.Error(),
			})
		}
	}(req, demo.Id.String())

	return ctx.SendStatus(fiber.StatusOK)
}

func renderTwiML(ctx *fiber.Ctx, resp *twiml.Response) error {
	body, err := resp.Render()
	if err != nil {
		return ctx.SendStatus(fiber.StatusOK)
	}
	ctx.Set("Content-Type", "application/xml")
	return ctx.Status(fiber.StatusOK).Send(body)
}

func emailLocalPart(address string) string {
	if idx := strings.IndexByte(address, '@'); idx > 0 {
		return address[:idx]
	}
	return address
}
