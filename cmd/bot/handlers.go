package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"relay/backend"
	"relay/cmd"
	"relay/common"
	"relay/tools"
)

type botApp struct {
	api      *tgbotapi.BotAPI
	settings *tools.Mutexed[cmd.Settings]
	client   *backend.Client
	logger   *log.Logger
	wg       tools.WorkGroup
}

// handleUpdate dispatches one Telegram update. Anything that talks to the
// backend runs on its own goroutine so a slow poll loop for one user never
// stalls the others.
func (b *botApp) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}
	chatId := msg.Chat.ID

	if msg.IsCommand() {
		command, args := msg.Command(), msg.CommandArguments()
		if command == "raw" || command == "ping" {
			b.sendTyping(chatId)
			b.wg.Spawn(func() {
				b.reply(chatId, b.commandReply(command, args))
			})
			return
		}
		b.reply(chatId, b.commandReply(command, args))
		return
	}

	b.handleText(msg)
}

func (b *botApp) handleText(msg *tgbotapi.Message) {
	snap := b.settings.Get()
	text, warn := softTrim(strings.TrimSpace(msg.Text), snap.MaxUserMsgLen)

	var userId int64
	if msg.From != nil {
		userId = msg.From.ID
	}
	chatId := msg.Chat.ID

	b.sendTyping(chatId)
	b.wg.Spawn(func() {
		reply := common.Truncate(b.client.RunJobText(context.Background(), text, userId), replyLimit)
		if warn != "" {
			b.reply(chatId, warn)
		}
		b.reply(chatId, reply)
	})
}

// commandReply computes the reply for a bot command without sending it.
func (b *botApp) commandReply(command string, args string) string {
	switch command {
	case "start":
		return msgStart
	case "help":
		return msgHelp
	case "privacy":
		return msgPrivacy
	case "show":
		snap := b.settings.Get()
		headers, err := json.Marshal(snap.Headers)
		common.HandleErrLog(err, b.logger)
		return fmt.Sprintf(msgShow, snap.ApiUrl, snap.ApiBase, headers)
	case "seturl":
		return b.setUrlReply(args)
	case "setheaders":
		return b.setHeadersReply(args)
	case "raw":
		return b.rawReply(args)
	case "ping":
		return b.pingReply()
	default:
		return msgUnknownCmd
	}
}

func (b *botApp) setUrlReply(args string) string {
	url := strings.TrimSpace(args)
	if url == "" {
		return msgSetUrlUsage
	}
	base := cmd.DeriveApiBase(url)
	b.settings.Modify(func(s *cmd.Settings) {
		s.ApiUrl = url
		s.ApiBase = base
	})
	return fmt.Sprintf(msgSetUrlOk, url, base)
}

func (b *botApp) setHeadersReply(args string) string {
	raw := strings.TrimSpace(args)
	if raw == "" {
		return msgSetHeadersUsage
	}
	var headers map[string]string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil || headers == nil {
		return msgSetHeadersErr
	}
	// Replace the map wholesale: in-flight jobs keep their snapshot.
	b.settings.Modify(func(s *cmd.Settings) {
		s.Headers = headers
	})
	rendered, err := json.MarshalIndent(headers, "", "  ")
	common.HandleErrLog(err, b.logger)
	return fmt.Sprintf(msgSetHeadersOk, rendered)
}

func (b *botApp) rawReply(args string) string {
	raw := strings.TrimSpace(args)
	if raw == "" {
		return msgRawUsage
	}
	body, err := parseJsonObject(raw)
	if err != nil {
		return fmt.Sprintf(msgRawParseErr, err)
	}

	status, respBody, err := b.client.SubmitRaw(context.Background(), body)
	if err != nil {
		if backend.IsTimeoutErr(err) {
			return backend.MsgBackendTimeout
		}
		return backend.MsgNetworkErr
	}

	var decoded any
	var text string
	if json.Unmarshal(respBody, &decoded) == nil {
		text = common.CompactJSON(decoded, rawBodyLimit)
	} else {
		text = common.Truncate(string(respBody), rawBodyLimit)
		if text == "" {
			text = "(empty)"
		}
	}
	return common.Truncate(fmt.Sprintf("Status: %d\n%s", status, text), rawMsgLimit)
}

func (b *botApp) pingReply() string {
	url, status, err := b.client.Ping(context.Background())
	if err != nil {
		if backend.IsTimeoutErr(err) {
			return backend.MsgBackendTimeout
		}
		return fmt.Sprintf(msgPingErr, url, err)
	}
	return fmt.Sprintf(msgPingOk, url, status)
}

func parseJsonObject(raw string) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, errors.New("top-level JSON must be an object")
	}
	return body, nil
}

// softTrim caps long user messages and tells the user about the cut. The
// limit counts runes so the trimmed prompt stays valid UTF-8.
func softTrim(s string, limit int) (trimmed string, warn string) {
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		return string([]rune(s)[:limit]), fmt.Sprintf(msgTrimWarn, limit)
	}
	return s, ""
}

func (b *botApp) reply(chatId int64, text string) {
	if b.api == nil {
		return
	}
	_, err := b.api.Send(tgbotapi.NewMessage(chatId, text))
	if err != nil {
		b.logger.Printf("failed to send reply: %v", err)
	}
}

func (b *botApp) sendTyping(chatId int64) {
	if b.api == nil {
		return
	}
	_, err := b.api.Request(tgbotapi.NewChatAction(chatId, tgbotapi.ChatTyping))
	if err != nil {
		b.logger.Printf("failed to send chat action: %v", err)
	}
}
