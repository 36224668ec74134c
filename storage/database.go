package storage

import (
	"condominium-server/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Load the .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file (this is normal in production)")
	}

	// Get the database URL
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Panic("DATABASE_URL is not set in the environment variables")
	}

	// Connect to the database
	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Printf("[error] failed to initialize database, got error %v", dbError)
		log.Panic("Error connecting to the database")
	}

	// Assign the db to the global variable
	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	// Perform database migrations
	if err := Migrate(db); err != nil {
		log.Printf("[error] migration failed: %v", err)
	}
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}

// Migrate runs the schema migrations against an externally opened
// database. Tests use it with an in-memory SQLite handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CommonArea{},
		&models.Reservation{},
		&models.AuditLog{},
		&models.Notification{},
	)
}
