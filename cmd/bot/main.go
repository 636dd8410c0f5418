package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"relay/backend"
	"relay/cmd"
	"relay/common"
	"relay/tools"
)

func main() {
	configPath := flag.String("config-file", "bot-config.json", "Path to the bot config file")
	dotEnvPath := flag.String("env-file", ".env", "Path to a .env file, '-' to disable")
	help := flag.Bool("help", false, "Print help")
	flag.Parse()

	if *help {
		tools.Printfln("Usage: %s", os.Args[0])
		flag.PrintDefaults()
		return
	}

	logger := log.New(
		os.Stderr,
		"bot: ",
		log.LstdFlags|log.LUTC|log.Lmsgprefix|log.Lmicroseconds,
	)

	env := cmd.GetEnv(*dotEnvPath)
	var config cmd.BotConfig
	err := common.ParseConfigFileWithRespectToEnv(*configPath, env, &config)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		tools.HandlePanic(err)
	}

	token := strings.TrimSpace(config.Token)
	if token == "" {
		token = env["TELEGRAM_BOT_TOKEN"]
	}
	if token == "" {
		logger.Fatalf("TELEGRAM_BOT_TOKEN is not set")
	}

	settings := tools.CreateMutexed(config.Settings())

	api, err := tgbotapi.NewBotAPI(token)
	tools.HandlePanic(err)

	app := &botApp{
		api:      api,
		settings: &settings,
		client:   backend.NewClient(&settings, logger),
		logger:   logger,
	}

	logger.Printf("bot %s is running with long polling", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	for update := range api.GetUpdatesChan(updateConfig) {
		app.handleUpdate(update)
	}
	app.wg.Wait()
}
