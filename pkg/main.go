package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pkg "github.com/amberglow/quill/pkg/internal"
	"github.com/amberglow/quill/pkg/internal/cache"
	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ___        _ _ _\n / _ \\ _   _(_) | |\n| | | | | | | | | |\n| |_| | |_| | | | |\n \\__\\_\\\\__,_|_|_|_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Quill"), pkg.AppVersion)
	fmt.Printf("The server-rendered developer blog engine\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bind", "0.0.0.0:8000")
	viper.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=quill port=5432 sslmode=disable")
	viper.SetDefault("security.session_secret", "dev-secret-key")
	viper.SetDefault("site.url", "http://localhost:8000")
	viper.SetDefault("site.name", "Developer Blog")
	viper.SetDefault("templates.path", "templates")
	viper.SetDefault("static.path", "static")
	viper.SetDefault("sitemap.path", "static/sitemap.xml")
	viper.SetDefault("robots.path", "static/robots.txt")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "adminpassword")
	viper.SetDefault("admin.email", "admin@example.com")

	_ = viper.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	_ = viper.BindEnv("security.session_secret", "SESSION_SECRET")
	_ = viper.BindEnv("site.url", "SITE_URL")

	// Load settings; environment variables carry the day when absent
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("No settings file found, relying on defaults and environment.")
	}

	// Prepare the response cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up cache store.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Seed the admin account; a failure here is logged, not fatal
	if err := services.SeedAdminAccount(); err != nil {
		log.Error().Err(err).Msg("An error occurred when seeding admin account.")
	}

	// Make sure a sitemap exists before the first crawler shows up
	if err := services.GenerateSitemap(); err != nil {
		log.Error().Err(err).Msg("An error occurred when generating initial sitemap.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() {
		if err := services.GenerateSitemap(); err != nil {
			log.Error().Err(err).Msg("An error occurred when refreshing sitemap.")
		}
	})
	quartz.Start()

	// Server
	go func() {
		if err := http.NewServer().Listen(viper.GetString("bind")); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting http server.")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
