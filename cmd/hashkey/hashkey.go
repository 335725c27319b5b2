package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates the bcrypt hash expected in API_KEY_HASH for a given key.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <api-key>", os.Args[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash key: %v", err)
	}

	fmt.Println(string(hash))
}
