package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"pagecore/internal/pagination"
)

// Decodes a page token with the configured key and prints its payload.
// For operator debugging only; the payload is not an API contract.
func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: tokendump <page_token>")
		os.Exit(1)
	}

	key, err := base64.StdEncoding.DecodeString(os.Getenv("AES_256_KEY_BASE64"))
	if err != nil || len(key) != 32 {
		fmt.Println("AES_256_KEY_BASE64 must be a valid 32-byte base64 key")
		os.Exit(1)
	}

	codec, err := pagination.NewCodec(pagination.CodecOptions{Key: key})
	if err != nil {
		panic(err)
	}

	p, err := codec.Decode(context.Background(), os.Args[1])
	if err != nil {
		fmt.Println("decode failed:", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(out))
}
