package main

import (
	"log"

	"github.com/joho/godotenv"

	"pdf-rag-be/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cmd.Execute()
}
