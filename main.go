package main

import (
	"cdesk/config"
	"cdesk/database"
	"cdesk/server"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := server.New("./views")

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
