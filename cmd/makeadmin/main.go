// Command makeadmin promotes an existing account to the admin role. It is
// the bootstrap path for the very first admin and is deliberately not
// exposed over the network.
//
//	makeadmin user@example.com
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/config"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store/mongostore"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: makeadmin <user_email>")
		os.Exit(1)
	}
	email := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client, db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	s, err := mongostore.New(ctx, db)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatalf("user with email %q not found", email)
	}

	user.Role = models.RoleAdmin
	if err := s.UpdateUser(ctx, user); err != nil {
		log.Fatalf("update: %v", err)
	}

	fmt.Printf("%s (%s) has been promoted to admin\n", user.FullName, user.Email)
}
