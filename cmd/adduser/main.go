// Command adduser registers a user directly in the database. Identity is
// managed out of band, so this is the only way to create one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tirelire/internal/config"
	"tirelire/internal/storage"
)

func main() {
	_ = godotenv.Load()

	firstName := flag.String("first-name", "", "user first name (required)")
	lastName := flag.String("last-name", "", "user last name (required)")
	email := flag.String("email", "", "user email (required)")
	city := flag.String("city", "", "user city")
	profession := flag.String("profession", "", "user profession")
	flag.Parse()

	if *firstName == "" || *lastName == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "adduser: -first-name, -last-name and -email are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "adduser: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "adduser: open database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	id, err := repo.CreateUser(context.Background(), *firstName, *lastName, *email, *city, *profession)
	if err != nil {
		fmt.Fprintf(os.Stderr, "adduser: create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user %d created (%s %s <%s>)\n", id, *firstName, *lastName, *email)
}
