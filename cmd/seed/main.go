package main

import (
	"fmt"
	"os"

	"foodmarket/internal/model"
	"foodmarket/pkg/config"
	"foodmarket/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the database with demo accounts and a demo restaurant for local
// development. Safe to run repeatedly; existing rows are reused.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	conf, err := config.Load("foodmarket")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.InitDB(&conf.DB)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.MigrateModels(
		&model.User{},
		&model.Restaurant{},
		&model.Category{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.NotificationChannel{},
	); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		fmt.Printf("Error seeding database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database seeded successfully")
}

func seed(db *gorm.DB) error {
	if _, err := upsertUser(db, "Admin User", "admin@example.com", model.RoleAdmin); err != nil {
		return err
	}
	owner, err := upsertUser(db, "Restaurant Owner", "owner@example.com", model.RoleRestaurantOwner)
	if err != nil {
		return err
	}
	if _, err := upsertUser(db, "Regular User", "user@example.com", model.RoleUser); err != nil {
		return err
	}

	var restaurant model.Restaurant
	err = db.Where("name = ?", "Demo Pizza Palace").First(&restaurant).Error
	if err == gorm.ErrRecordNotFound {
		restaurant = model.Restaurant{
			Name:        "Demo Pizza Palace",
			Description: "Authentic Italian pizza and pasta",
			Address:     "123 Main St, Demo City",
			Phone:       "+1-555-0123",
			OwnerID:     owner.ID,
			IsActive:    true,
		}
		err = db.Create(&restaurant).Error
	}
	if err != nil {
		return err
	}

	pizza, err := upsertCategory(db, restaurant.ID, "Pizza", "Delicious pizza varieties")
	if err != nil {
		return err
	}
	pasta, err := upsertCategory(db, restaurant.ID, "Pasta", "Fresh pasta dishes")
	if err != nil {
		return err
	}

	items := []model.MenuItem{
		{Name: "Margherita Pizza", Description: "Classic pizza with tomato sauce, mozzarella and fresh basil", Price: 12.99, RestaurantID: restaurant.ID, CategoryID: &pizza.ID, IsAvailable: true},
		{Name: "Pepperoni Pizza", Description: "Classic pepperoni pizza with mozzarella cheese", Price: 14.99, RestaurantID: restaurant.ID, CategoryID: &pizza.ID, IsAvailable: true},
		{Name: "Spaghetti Carbonara", Description: "Creamy pasta with pancetta, eggs and parmesan cheese", Price: 16.99, RestaurantID: restaurant.ID, CategoryID: &pasta.ID, IsAvailable: true},
	}
	for _, item := range items {
		var existing model.MenuItem
		err := db.Where("restaurant_id = ? AND name = ?", restaurant.ID, item.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}

func upsertUser(db *gorm.DB, name, email, role string) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = model.User{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func upsertCategory(db *gorm.DB, restaurantID uint, name, description string) (*model.Category, error) {
	var category model.Category
	err := db.Where("restaurant_id = ? AND name = ?", restaurantID, name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	category = model.Category{Name: name, Description: description, RestaurantID: restaurantID}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
