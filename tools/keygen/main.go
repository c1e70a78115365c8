package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Prints a fresh AES-256 key for AES_256_KEY_BASE64. Rotating the key
// invalidates all outstanding page tokens, which clients recover from by
// restarting their pagination sequence.
func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(key))
}
