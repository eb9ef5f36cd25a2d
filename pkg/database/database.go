package database

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.LessonContent{},
		&model.Note{},
		&model.LessonProgress{},
		&model.ExerciseSubmission{},
		&model.Lead{},
		&model.Payment{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a default admin account so the back office is reachable on a
	// fresh install. The password must be changed after first login.
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&model.User{
				Name:     "Administrator",
				Email:    "admin@codeplus.local",
				Password: string(hash),
				Role:     model.Admin,
			})
			log.Println("Seeded default admin account admin@codeplus.local")
		}
	}

	// Seed one starter course so authoring screens are not empty.
	var courseCount int64
	db.Model(&model.Course{}).Count(&courseCount)
	if courseCount == 0 {
		db.Create(&model.Course{
			Title:       "Getting Started",
			Description: "Introductory track for new students.",
			Status:      model.CoursePublished,
			Order:       1,
		})
	}

	return db, nil
}
