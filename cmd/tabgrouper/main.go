package main

import (
	"log"

	"github.com/nadalpiantini/tabgrouper/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("tabgrouper failed to start: %v", err)
	}
}
