// Command createadmin provisions an admin account for the dashboard login.
//
//	go run ./cmd/createadmin -email admin@club.example.edu -name "Club Admin"
//
// The password is read from CLUBEVENTS_ADMIN_PASSWORD so it stays out of shell history.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"clubevents/config"
	"clubevents/internal/adapters/auth"
	"clubevents/internal/repository/postgres"
	"clubevents/internal/services"
)

const passwordEnv = "CLUBEVENTS_ADMIN_PASSWORD"

func main() {
	emailFlag := flag.String("email", "", "admin email address")
	nameFlag := flag.String("name", "", "display name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	password := os.Getenv(passwordEnv)
	if *emailFlag == "" || password == "" {
		fmt.Fprintf(os.Stderr, "usage: %s=... createadmin -email <email> [-name <name>]\n", passwordEnv)
		os.Exit(2)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := services.NewUserService(postgres.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	user, err := svc.CreateAdmin(ctx, *emailFlag, *nameFlag, password)
	if err != nil {
		logger.Error("create admin", "err", err)
		os.Exit(1)
	}
	logger.Info("admin created", "id", user.ID, "email", user.Email)
}
