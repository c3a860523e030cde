// Command hashpass prints a bcrypt hash for a credential value, suitable for
// any of the *_PASSWORD environment variables.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/soryntech/portfolio-api/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpass: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
