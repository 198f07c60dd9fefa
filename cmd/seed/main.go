package main

import (
	"context"
	"log"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a fresh database with staff accounts, a small room inventory and
// the add-on service catalog. Safe to run once against an empty database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()

	users := repository.NewUserRepository(db)
	for _, u := range []struct {
		email, password, name string
		role                  domain.UserRole
	}{
		{"admin@hotelier.local", "admin-change-me", "Administrator", domain.RoleAdmin},
		{"manager@hotelier.local", "manager-change-me", "Front Desk", domain.RoleManager},
		{"guest@hotelier.local", "guest-change-me", "Demo Guest", domain.RoleGuest},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt: %v", err)
		}
		user := &domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Name:         u.name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
		log.Printf("user id=%d email=%s role=%s", user.ID, user.Email, user.Role)
	}

	roomTypes := repository.NewRoomTypeRepository(db)
	rooms := repository.NewRoomRepository(db)
	for _, t := range []struct {
		name, description string
		capacity          int
		baseRate          float64
		labels            []string
	}{
		{"Standard", "Queen bed, city view", 2, 89.00, []string{"101", "102", "103"}},
		{"Deluxe", "King bed, balcony", 2, 139.00, []string{"201", "202"}},
		{"Family Suite", "Two bedrooms, kitchenette", 4, 219.00, []string{"301"}},
	} {
		rt := &domain.RoomType{
			Name:        t.name,
			Description: t.description,
			Capacity:    t.capacity,
			BaseRate:    t.baseRate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := roomTypes.Create(ctx, rt); err != nil {
			log.Fatalf("seed room type %s: %v", t.name, err)
		}

		for _, label := range t.labels {
			room := &domain.Room{
				RoomTypeID: rt.ID,
				Label:      label,
				Status:     domain.RoomAvailable,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := rooms.Create(ctx, room); err != nil {
				log.Fatalf("seed room %s: %v", label, err)
			}
		}
		log.Printf("room type id=%d name=%s rooms=%d", rt.ID, rt.Name, len(t.labels))
	}

	items := repository.NewServiceItemRepository(db)
	for _, s := range []struct {
		name, description string
		unitPrice         float64
	}{
		{"Breakfast", "Per person, per day", 15.00},
		{"Parking", "Per day", 12.50},
		{"Spa Access", "Per visit", 40.00},
		{"Late Checkout", "Until 15:00", 25.00},
	} {
		item := &domain.ServiceItem{
			Name:        s.name,
			Description: s.description,
			UnitPrice:   s.unitPrice,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := items.Create(ctx, item); err != nil {
			log.Fatalf("seed service %s: %v", s.name, err)
		}
	}

	log.Println("seed complete")
}
