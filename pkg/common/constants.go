package common

const (
	// TestModeEnv enables test mode when present in the environment, whatever its value.
	TestModeEnv = "TEST"

	RedisKeySlotLock = "stock_bot:slot:%d"

	NotAvailable = "N/A"
)
