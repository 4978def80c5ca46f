package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"minihr/internal/config"
	"minihr/internal/db"
	"minihr/internal/model"
	"minihr/internal/repository"
)

// seedUser is one bootstrap account definition.
type seedUser struct {
	FullName string
	Email    string
	Password string
	Role     model.Role
	Balance  int
}

func demoUsers() []seedUser {
	return []seedUser{
		{FullName: "Alice Johnson", Email: "alice@example.com", Password: "password123", Role: model.RoleEmployee, Balance: model.DefaultEmployeeLeaveBalance},
		{FullName: "Bob Martinez", Email: "bob@example.com", Password: "password123", Role: model.RoleEmployee, Balance: model.DefaultEmployeeLeaveBalance},
		{FullName: "Carol White", Email: "carol@example.com", Password: "password123", Role: model.RoleEmployee, Balance: model.DefaultEmployeeLeaveBalance},
	}
}

func main() {
	withDemo := flag.Bool("demo", false, "also seed demo employee accounts")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.LeaveRequest{}, &model.Attendance{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	users := make([]seedUser, 0, 4)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		users = append(users, seedUser{
			FullName: "System Admin",
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Role:     model.RoleAdmin,
			Balance:  model.DefaultAdminLeaveBalance,
		})
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	}
	if *withDemo {
		users = append(users, demoUsers()...)
	}

	created, skipped, err := seedUsers(ctx, userRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// seedUsers creates accounts that do not exist yet; existing emails are left
// untouched so reseeding never resets balances.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []seedUser) (created int, skipped int, err error) {
	for _, u := range users {
		existing, err := repo.FindByEmail(ctx, u.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking user %s: %w", u.Email, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 10)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", u.Email, err)
		}

		user := &model.User{
			FullName:      u.FullName,
			Email:         u.Email,
			PasswordHash:  string(hash),
			Role:          u.Role,
			DateOfJoining: time.Now(),
			LeaveBalance:  u.Balance,
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", u.Email, err)
		}
		log.Printf("Created %s user: %s", u.Role, u.Email)
		created++
	}
	return created, skipped, nil
}
