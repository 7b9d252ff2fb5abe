package main

import (
	"log"
	"reward_wheel/internal/app"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
