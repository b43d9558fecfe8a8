package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cadastro/disciplinas/config"
	"github.com/cadastro/disciplinas/database"
	"github.com/cadastro/disciplinas/logger"
	"github.com/cadastro/disciplinas/web"
	"github.com/cadastro/disciplinas/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	dbConfig := config.GetDatabaseConfig()
	db, err := database.InitDB(dbConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			logger.Warning("close db err:", err)
		}
	}()
	logger.Info("Database ready at", dbConfig)

	server := web.NewServer(db)
	if err := server.Start(); err != nil {
		logger.Error("start server err:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(db)
			if err := server.Start(); err != nil {
				logger.Error("restart server err:", err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	dbConfig := config.GetDatabaseConfig()
	fmt.Println("Start migrating database", dbConfig.String())
	db, err := database.InitDB(dbConfig)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.CloseDB(db); err != nil {
		fmt.Println(err)
	}
	fmt.Println("Migration done!")
}

func listDisciplines() {
	db, err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB(db)

	users, err := service.NewDisciplineService(db).GetAllUsers()
	if err != nil {
		fmt.Println("list disciplines failed:", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("no disciplines registered")
		return
	}
	for _, user := range users {
		if user.Role != nil {
			fmt.Println(user, user.Role)
		} else {
			fmt.Println(user)
		}
	}
}

func showSetting() {
	fmt.Println("current settings as follows:")
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("database:", config.GetDatabaseConfig())
	fmt.Println("session store:", config.GetSessionStore())
	if config.GetSessionStore() == config.SessionStoreRedis {
		addr := config.GetRedisAddr()
		if addr == "" {
			addr = "embedded"
		}
		fmt.Println("redis:", addr)
	}
	fmt.Println("log level:", config.GetLogLevel())
	fmt.Println("log folder:", config.GetLogFolder())
}

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Println("load .env failed:", err)
	}

	var rootCmd = &cobra.Command{
		Use:     config.GetName(),
		Version: config.GetVersion(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered disciplines",
		Run: func(cmd *cobra.Command, args []string) {
			listDisciplines()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	settingCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, listCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
