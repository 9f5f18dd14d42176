package common

// Cache keys.
const (
	KEY_ANALYTICS_ACCOUNT = "analytics:%d:"
	KEY_ANALYTICS_REPORT  = KEY_ANALYTICS_ACCOUNT + "%s"
)

// Context and echo keys.
const (
	KEY_USER_ID = "user_id"
)
