package main

import (
	"os"

	"github.com/contentdeck/contentdeck/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
