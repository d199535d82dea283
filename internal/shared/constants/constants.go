package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType        = "Content-Type"
	HeaderAPIKey             = "X-API-Key"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
	HeaderThrottleType       = "X-Throttle-Type"
	HeaderSuggestedDelayMs   = "X-Suggested-Delay-Ms"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyClient    = "client"
	ContextKeyAdmission = "admission"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableSubscriptionPlans = "subscription_plans"
	TableClients           = "clients"
	TableRateLimitRules    = "rate_limit_rules"
	TableNotifications     = "notifications"

	// Default subscription plan created at startup when seeding is enabled
	DefaultPlanName         = "Default"
	DefaultPlanMonthlyLimit = 1000
)
