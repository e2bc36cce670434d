package prompt

import (
	"strings"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/pkg/llm"
)

const defaultIndustry = "general"

// BuildSystemPrompt renders the mission template for a demo. A pre-built
// SystemPrompt on the demo wins over the template. The result never contains
// unresolved {{...}} placeholders.
func BuildSystemPrompt(demo *entity.Demo, channel entity.Channel) string {
	if strings.TrimSpace(demo.SystemPrompt) != "" {
		return demo.SystemPrompt + toneFor(channel)
	}

	template := templateFor(demo.MissionProfile)
	return resolve(template, demo, channel)
}

// FallbackSystemPrompt is used when a demo has neither a mission profile nor
// a pre-built prompt; the exchange proceeds with a generic agent.
func FallbackSystemPrompt(companyName string, channel entity.Channel) string {
	demo := &entity.Demo{CompanyName: companyName}
	return resolve(fallbackTemplate, demo, channel)
}

func resolve(template string, demo *entity.Demo, channel entity.Channel) string {
	company := strings.TrimSpace(demo.CompanyName)
	if company == "" {
		company = "the company"
	}
	industry := strings.TrimSpace(demo.Industry)
	if industry == "" {
		industry = defaultIndustry
	}

	productsClause := ""
	if len(demo.Products) > 0 {
		productsClause = ", including " + joinList(demo.Products)
	}
	offersClause := ""
	if len(demo.Offers) > 0 {
		offersClause = ". Current offers: " + joinList(demo.Offers)
	}
	qualificationClause := ""
	if strings.TrimSpace(demo.Qualification) != "" {
		qualificationClause = " Qualify leads against: " + strings.TrimSpace(demo.Qualification) + "."
	}

	replacer := strings.NewReplacer(
		"{{company}}", company,
		"{{industry}}", industry,
		"{{products_clause}}", productsClause,
		"{{offers_clause}}", offersClause,
		"{{qualification_clause}}", qualificationClause,
		"{{tone_clause}}", toneFor(channel),
	)
	return replacer.Replace(template)
}

func joinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ", ")
}

// AssembleMessages produces the final ordered list sent to the model: one
// system message (knowledge context appended when present), the chronological
// history, then the new user message.
func AssembleMessages(systemPrompt, knowledgeContext string, history []*entity.ConversationMessage, newMessage string) []llm.Message {
	system := systemPrompt
	if knowledgeContext != "" {
		system = system + "\n\n" + knowledgeContext
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: string(entity.RoleSystem), Content: system})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: string(entity.RoleUser), Content: newMessage})
	return messages
}
