package main

import (
	"log"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/commands"
	"github.com/Niranjjith/Attendance-System/internal/pkg/config"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/redisdb"
	"github.com/Niranjjith/Attendance-System/internal/router"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalln("loading config:", err)
	}

	postgresDB := postgresql.NewDB(cfg)
	commands.MigrateUP(postgresDB)

	session := redisdb.NewSession(cfg)
	defer func() {
		if err := session.Close(); err != nil {
			log.Println("closing session store:", err)
		}
	}()

	authenticator, err := auth.NewAuth(cfg.PrivateKey)
	if err != nil {
		log.Fatalln("loading signing key:", err)
	}

	app := web.NewApp()

	r := router.NewRouter(
		app,
		postgresDB,
		session,
		cfg.Port,
		authenticator,
		cfg.BaseUrl,
		cfg.PrivateKey,
	)

	if err := r.Init(); err != nil {
		log.Fatalln("running server:", err)
	}
}
