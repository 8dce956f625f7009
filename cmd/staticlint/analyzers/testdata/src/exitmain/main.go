package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) > 2 {
		os.Exit(2) // want `direct call to os.Exit in main.main is forbidden`
	}
	defer func() {
		os.Exit(0) // want `direct call to os.Exit in main.main is forbidden`
	}()
	log.Fatal("stop")
}

func helper() {
	os.Exit(1)
}
