// seed puebla la base de datos con un menú inicial y el usuario admin del
// dashboard. Es idempotente por email: si el admin ya existe no lo duplica.
//
// Uso: go run ./cmd/seed
// Variables: las mismas del API (DATABASE_URL, JWT_SECRET, etc.) más
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

// Menú de arranque: nombre, descripción, precio.
var starterMenu = []struct {
	name  string
	desc  string
	price string
}{
	{"Chicken Biryani", "Fragrant basmati rice with chicken", "180"},
	{"Veg Biryani", "Basmati rice with seasonal vegetables", "140"},
	{"Samosa", "Crispy fried pastry", "25"},
	{"Paneer Tikka", "Chargrilled cottage cheese", "160"},
	{"Masala Dosa", "Rice crepe with potato filling", "90"},
	{"Mango Lassi", "Sweet yogurt drink", "60"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@pedidos.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "changeme123")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	runner := postgres.NewTxRunner(pool)
	err = runner.Run(ctx, func(
		menuRepo repository.MenuItemRepository,
		_ repository.OrderRepository,
		userRepo repository.UserRepository,
	) error {
		if err := seedMenu(menuRepo); err != nil {
			return err
		}
		return seedAdmin(userRepo, adminEmail, adminPassword)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("seed completado")
}

// seedMenu inserta el menú inicial solo si la tabla está vacía.
func seedMenu(repo repository.MenuItemRepository) error {
	existing, err := repo.List(1, 0)
	if err != nil {
		return fmt.Errorf("listar menú: %w", err)
	}
	if len(existing) > 0 {
		fmt.Println("menú ya poblado, se omite")
		return nil
	}
	now := time.Now()
	for i, m := range starterMenu {
		price, err := decimal.NewFromString(m.price)
		if err != nil {
			return fmt.Errorf("precio de %s: %w", m.name, err)
		}
		item := &entity.MenuItem{
			ID:          uuid.New().String(),
			Name:        m.name,
			Description: m.desc,
			Price:       price,
			Available:   true,
			Position:    i + 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(item); err != nil {
			return fmt.Errorf("crear %s: %w", m.name, err)
		}
		fmt.Printf("ítem creado: %s (%s)\n", m.name, m.price)
	}
	return nil
}

// seedAdmin crea el usuario admin si el email no existe todavía.
func seedAdmin(repo repository.UserRepository, email, password string) error {
	existing, err := repo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("buscar admin: %w", err)
	}
	if existing != nil {
		fmt.Printf("admin %s ya existe, se omite\n", email)
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(user); err != nil {
		return fmt.Errorf("crear admin: %w", err)
	}
	fmt.Printf("admin creado: %s\n", email)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
