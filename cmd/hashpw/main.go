// Command hashpw печатает bcrypt-хеш пароля для ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpw 'secret'
package main

import (
	"fmt"
	"os"

	"github.com/Dosada05/zone-cup/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
