package database

import (
	"fmt"
	"log"

	config "github.com/peerevalpro/peer_review/configs"
	"github.com/peerevalpro/peer_review/models"
	"github.com/peerevalpro/peer_review/review"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.RatingCriterion{},
		&models.EvaluationCriterion{},
		&models.PeerReviewSubmission{},
		&models.ReviewState{},
		&models.ResultsPublication{},
		&models.SubmissionDeadline{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedDefaults makes sure the singleton review-state row exists and the
// four default rating criteria are present. Safe to run on every start.
func SeedDefaults() {
	var state models.ReviewState
	if err := DB.First(&state, "id = ?", models.ReviewStateID).Error; err != nil {
		state = models.ReviewState{ID: models.ReviewStateID, Status: string(review.PhaseDraft)}
		if err := DB.Create(&state).Error; err != nil {
			log.Fatalf("🔥 Failed to seed review state: %v", err)
		}
	}

	for _, title := range review.DefaultCriterionTitles {
		var count int64
		DB.Model(&models.RatingCriterion{}).Where("LOWER(title) = LOWER(?)", title).Count(&count)
		if count > 0 {
			continue
		}
		c := models.RatingCriterion{
			Title:    title,
			Required: true,
			ScaleMin: 1,
			ScaleMax: 5,
			Weight:   1.0,
		}
		if err := DB.Create(&c).Error; err != nil {
			log.Fatalf("🔥 Failed to seed default criterion %q: %v", title, err)
		}
	}
	log.Println("✅ Default rating criteria seeded")
}

// SeedInstructor creates the initial instructor account from the
// environment, skipping when one already exists.
func SeedInstructor() {
	email := config.Config("INSTRUCTOR_EMAIL")
	username := config.Config("INSTRUCTOR_USERNAME")
	password := config.Config("INSTRUCTOR_PASSWORD")
	if email == "" || username == "" || password == "" {
		log.Println("⚠️ Instructor seed skipped: INSTRUCTOR_EMAIL/USERNAME/PASSWORD not set")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for instructor user: %v", err)
	}
	if count > 0 {
		log.Println("Instructor user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash instructor password: %v", err)
	}

	instructor := models.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Role:     models.RoleInstructor,
	}
	if err := DB.Create(&instructor).Error; err != nil {
		log.Fatalf("🔥 Failed to seed instructor user: %v", err)
	}
	log.Println("✅ Instructor user seeded successfully")
}
