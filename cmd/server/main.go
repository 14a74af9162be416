package main

import (
	"flag"
	"log"
	"log/slog"
	"path/filepath"

	"launchlist/bot"
	"launchlist/impl/auth"
	"launchlist/impl/core"
	"launchlist/internal/config"
	"launchlist/internal/database"
	"launchlist/internal/deploy"
	"launchlist/internal/http-server/api"
	"launchlist/internal/identity"
	"launchlist/internal/mailer"
	"launchlist/internal/provisioner"
	"launchlist/internal/sitemode"
	"launchlist/internal/waitlist"
	"launchlist/lib/logger"
	"launchlist/lib/sl"
)

const logFileName = "launchlist.log"

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, filepath.Join(*logPath, logFileName))

	db := database.NewMongoClient(conf)
	if err := db.EnsureIndexes(); err != nil {
		log.Fatal("ensure indexes: ", err)
	}

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.ApiKey, db, lg)
		if err != nil {
			log.Fatal("telegram bot: ", err)
		}
		lg = slog.New(logger.NewTelegramHandler(lg.Handler(), tgBot, slog.LevelWarn))
	}
	lg.Info("starting launchlist", slog.String("config", *configPath), slog.String("env", conf.Env))

	counter := waitlist.New(db, conf, lg)
	ml := mailer.New(conf, lg)
	prov := provisioner.NewClient(provisioner.Config(conf.Provisioner), lg)
	modes := sitemode.New(db, ml, prov, lg)

	c := core.New(counter, modes, db, lg)
	c.SetAuthService(auth.New(db))

	if conf.Identity.Enabled {
		ident, err := identity.NewSQLClient(conf)
		if err != nil {
			log.Fatal("identity client: ", err)
		}
		defer ident.Close()
		c.SetAccountSource(ident)
	}
	if conf.Deploy.Enabled {
		c.SetDeployService(deploy.NewClient(deploy.Config{
			BaseURL: conf.Deploy.BaseURL,
			APIKey:  conf.Deploy.APIKey,
			SiteID:  conf.Deploy.SiteID,
		}, lg))
	}
	if tgBot != nil {
		tgBot.SetStats(c)
		c.SetAlerter(tgBot)
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot stopped", sl.Err(err))
			}
		}()
		defer tgBot.Stop()
	}

	if err := api.New(conf, lg, c); err != nil {
		lg.Error("api server stopped", sl.Err(err))
	}
}
