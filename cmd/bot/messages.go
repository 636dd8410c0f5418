package main

// Reply templates, kept close to one place so the bot's voice stays
// consistent.
const (
	msgStart = "Hi welcome to Dobby chat\n\n" +
		"Dobby chat fully powered by Roma sentientAGI\n"
	msgHelp            = "Send me any message and I'll ask the backend, then return the final result."
	msgPrivacy         = "I don't store data. I only forward your text to the configured backend."
	msgShow            = "Current settings:\nURL: %s\nBase: %s\nHeaders: %s"
	msgSetUrlUsage     = "Usage: /seturl http://host:port/api/v1/executions"
	msgSetUrlOk        = "✅ API URL set:\n%s\n(base: %s)"
	msgSetHeadersUsage = `Usage: /setheaders {"Authorization":"Bearer ..."}`
	msgSetHeadersOk    = "✅ Headers updated:\n%s"
	msgSetHeadersErr   = "❌ Invalid JSON headers."
	msgRawUsage        = `Usage: /raw {"goal":"hello","max_depth":1}`
	msgRawParseErr     = "❌ JSON parse error: %v"
	msgUnknownCmd      = "Unknown command. Type anything to run the pipeline."
	msgTrimWarn        = "Note: your message was long; I sent the first %d characters."
	msgPingOk          = "✅ Ping OK: GET %s\nStatus: %d"
	msgPingErr         = "❌ Ping failed: GET %s\n%v"
)

// Telegram caps messages at 4096 characters; stay under it with room for the
// ellipsis marker.
const (
	rawBodyLimit = 3500
	rawMsgLimit  = 3900
	replyLimit   = 4000
)
