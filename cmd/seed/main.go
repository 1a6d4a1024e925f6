package main

import (
	"fmt"
	"time"

	"telemed-scheduling/config"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Development seeder: a handful of doctors with published slots and a pool of
// patients, all with the password "Passw0rd1".
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Info("Seed starting")

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedDoctors(db, 10); err != nil {
		logrus.Fatalf("Failed to seed doctors: %v", err)
	}
	if err := seedPatients(db, 50); err != nil {
		logrus.Fatalf("Failed to seed patients: %v", err)
	}

	logrus.Info("Seed complete")
}

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
}

func hashedPassword() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd1"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

func seedDoctors(db *gorm.DB, count int) error {
	logrus.Infof("Seeding %d doctors", count)
	password := hashedPassword()

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			user := entity.User{
				RoleID:    entity.RoleIDDoctor,
				Email:     fmt.Sprintf("doctor%d@%s", i+1, gofakeit.DomainName()),
				Password:  password,
				FirstName: gofakeit.FirstName(),
				LastName:  gofakeit.LastName(),
				Gender:    gofakeit.RandomString([]string{"MALE", "FEMALE"}),
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			profile := entity.DoctorProfile{
				UserID:          user.ID,
				Specialty:       specialties[gofakeit.Number(0, len(specialties)-1)],
				MedicalLicense:  fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
				ConsultationFee: decimal.NewFromInt(int64(gofakeit.Number(20, 200))),
				Biography:       gofakeit.Sentence(12),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}

			// A week of morning slots per doctor.
			for day := 1; day <= 7; day++ {
				start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, day).Add(9 * time.Hour)
				slot := entity.Slot{
					DoctorID:    user.ID,
					StartTime:   start,
					EndTime:     start.Add(30 * time.Minute),
					MaxPatients: gofakeit.Number(1, 3),
					IsAvailable: true,
				}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func seedPatients(db *gorm.DB, count int) error {
	logrus.Infof("Seeding %d patients", count)
	password := hashedPassword()

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			user := entity.User{
				RoleID:    entity.RoleIDPatient,
				Email:     fmt.Sprintf("patient%d@%s", i+1, gofakeit.DomainName()),
				Password:  password,
				FirstName: gofakeit.FirstName(),
				LastName:  gofakeit.LastName(),
				Gender:    gofakeit.RandomString([]string{"MALE", "FEMALE", "OTHER"}),
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			dob := gofakeit.DateRange(
				time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
			)
			profile := entity.PatientProfile{
				UserID:      user.ID,
				DateOfBirth: &dob,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
