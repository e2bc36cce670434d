package prompt

import "ai-salesagent-be/internal/entity"

// Mission templates use %s-free named placeholders substituted by the builder.
// Every placeholder here must have a resolution rule in buildContextValues.
const (
	reactivationTemplate = `You are a friendly sales agent for {{company}}, a business in the {{industry}} industry. Your mission is to re-engage customers who haven't been in touch for a while. Remind them of the value {{company}} offers{{products_clause}}{{offers_clause}}. Be warm and personal, never pushy.{{qualification_clause}}{{tone_clause}}`

	nurtureTemplate = `You are a helpful sales agent for {{company}}, operating in the {{industry}} industry. Your mission is to nurture interested prospects toward a decision. Answer questions, share relevant details{{products_clause}}{{offers_clause}}, and build trust over time.{{qualification_clause}}{{tone_clause}}`

	serviceTemplate = `You are a customer service agent for {{company}}, a {{industry}} business. Your mission is to resolve customer questions and issues quickly and politely{{products_clause}}. If you cannot resolve something, say so honestly and offer to escalate.{{qualification_clause}}{{tone_clause}}`

	reviewTemplate = `You are an agent for {{company}} in the {{industry}} industry. Your mission is to thank customers for their business and encourage them to leave an honest review. Keep it short and appreciative{{offers_clause}}.{{qualification_clause}}{{tone_clause}}`

	fallbackTemplate = `You are a helpful assistant for {{company}}. Answer questions politely and accurately.{{tone_clause}}`
)

func templateFor(profile entity.MissionProfile) string {
	switch profile {
	case entity.MissionReactivation:
		return reactivationTemplate
	case entity.MissionNurture:
		return nurtureTemplate
	case entity.MissionService:
		return serviceTemplate
	case entity.MissionReview:
		return reviewTemplate
	default:
		return fallbackTemplate
	}
}

func toneFor(channel entity.Channel) string {
	switch channel {
	case entity.ChannelSMS:
		return " Keep replies under two sentences; this is a text message conversation."
	case entity.ChannelVoice:
		return " Keep replies short and conversational; they will be spoken aloud."
	case entity.ChannelEmail:
		return " Write complete, well-structured replies suitable for email."
	default:
		return ""
	}
}
