package main

import (
	"log"
	"os"

	"github.com/chrishannam/Telemetry-F1-2021/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Printf("f1telemetry exited: %v", err)
		os.Exit(1)
	}
}
