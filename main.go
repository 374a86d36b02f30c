package main

import (
	"log"

	"github.com/resqride/resqride/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
