// +build ignore

// Script to generate the bcrypt hash for the admin API key.
// Run with: go run scripts/hash_admin_key.go -key yoursecretkey
// Put the output in ADMIN_KEY_HASH (or admin.key_hash in config.yaml).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	key := flag.String("key", "", "Admin API key to hash")
	flag.Parse()

	if *key == "" {
		fmt.Println("Usage: go run scripts/hash_admin_key.go -key <key>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*key), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash key: %v", err)
	}

	fmt.Println(string(hash))
}
