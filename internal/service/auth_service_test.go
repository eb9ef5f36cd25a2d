package service

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-long-enough-for-tests-ok"
	cfg.JWT.ExpireTime = time.Hour

	return NewAuthService(repository.NewUserRepository(db), cfg), db
}

func TestRegisterHashesPasswordAndForcesStudentRole(t *testing.T) {
	s, db := newAuthTestService(t)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "secret-pass", Role: model.Admin}
	if err := s.Register(user); err != nil {
		t.Fatal(err)
	}

	var stored model.User
	if err := db.Where("email = ?", "ada@example.com").First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Role != model.Student {
		t.Fatalf("role = %q, want student", stored.Role)
	}
	if stored.Password == "secret-pass" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret-pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _ := newAuthTestService(t)

	first := &model.User{Name: "Ada", Email: "ada@example.com", Password: "secret-pass"}
	if err := s.Register(first); err != nil {
		t.Fatal(err)
	}

	second := &model.User{Name: "Other", Email: "ada@example.com", Password: "another-pass"}
	if err := s.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLogin(t *testing.T) {
	s, db := newAuthTestService(t)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "secret-pass"}
	if err := s.Register(user); err != nil {
		t.Fatal(err)
	}

	token, err := s.Login("ada@example.com", "secret-pass")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Fatalf("claims wrong: %+v", claims)
	}

	if _, err := s.Login("ada@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, err := s.Login("nobody@example.com", "secret-pass"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v", err)
	}

	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("disabled", true).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := s.Login("ada@example.com", "secret-pass"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("disabled account: err = %v", err)
	}
}
