package entity

// Role is the closed set of chat message roles.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Channel is the inbound transport a conversation arrives on.
type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelSMS   Channel = "sms"
	ChannelVoice Channel = "voice"
	ChannelEmail Channel = "email"
)

// DemoStatus is the lifecycle state of a demo agent.
type DemoStatus string

const (
	DemoStatusDraft   DemoStatus = "draft"
	DemoStatusActive  DemoStatus = "active"
	DemoStatusExpired DemoStatus = "expired"
)

// IdentifierType tags how a lead was identified on first contact.
type IdentifierType string

const (
	IdentifierEmail     IdentifierType = "email"
	IdentifierPhone     IdentifierType = "phone"
	IdentifierAnonymous IdentifierType = "anonymous"
)

// MissionProfile names the behavioral template an agent runs with.
type MissionProfile string

const (
	MissionReactivation MissionProfile = "reactivation"
	MissionNurture      MissionProfile = "nurture"
	MissionService      MissionProfile = "service"
	MissionReview       MissionProfile = "review"
)
