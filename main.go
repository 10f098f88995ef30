package main

import (
	"flag"
	"log"

	"weddinginvite/internal/app"
)

// @title        Wedding Invitation API
// @version      1.0
// @description  Cuenta regresiva, confirmación de asistencia y pases de la invitación.
// @BasePath     /
func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $CONFIG_PATH or config/config.yaml)")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatal(err)
	}
}
