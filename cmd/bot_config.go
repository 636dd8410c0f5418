package cmd

// BotConfig is the bot's config file. String fields starting with '$' are
// substituted from the environment by ParseConfigFileWithRespectToEnv, so the
// token is normally written as "$TELEGRAM_BOT_TOKEN".
type BotConfig struct {
	Token         string            `json:"telegram-bot-token"`
	ApiUrl        string            `json:"api-url"`
	Headers       map[string]string `json:"headers"`
	PollInterval  Duration          `json:"poll-interval"`
	MaxWait       Duration          `json:"max-wait"`
	MaxUserMsgLen int               `json:"max-user-msg-len"`
}

// Settings builds the runtime settings, falling back to defaults for any
// field the config file leaves out.
func (c *BotConfig) Settings() Settings {
	settings := DefaultSettings()
	if c.ApiUrl != "" {
		settings.ApiUrl = c.ApiUrl
		settings.ApiBase = DeriveApiBase(c.ApiUrl)
	}
	if c.Headers != nil {
		settings.Headers = c.Headers
	}
	if c.PollInterval.Duration > 0 {
		settings.PollInterval = c.PollInterval.Duration
	}
	if c.MaxWait.Duration > 0 {
		settings.MaxWait = c.MaxWait.Duration
	}
	if c.MaxUserMsgLen > 0 {
		settings.MaxUserMsgLen = c.MaxUserMsgLen
	}
	return settings
}
