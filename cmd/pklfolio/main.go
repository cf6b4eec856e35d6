package main

import (
	"log"

	"github.com/nafzev/pklfolio"
)

func main() {
	app := pklfolio.New(pklfolio.ConfigFromEnv())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
