// Dev seeding utility: wipes the demo collections and loads an insurance
// admin, a handful of approved doctors with weekday schedules, and demo
// patients. Run against a local database only.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "Medibook-Dev-1!"

func main() {
	config.LoadConfig()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"users", "doctors", "patients", "doctor_schedules", "doctor_vacations", "appointments", "doctor_patient_requests", "medical_records", "notifications"} {
		if _, err := database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("failed to clear %s: %v", name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	now := time.Now()
	newUser := func(email, first, last, role string) models.User {
		return models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    first,
			LastName:     last,
			Role:         role,
			PhoneNumber:  fmt.Sprintf("55501%05d", rand.Intn(100000)),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	var users []interface{}

	// The insurance portal account is provisioned here, never via register.
	adminUser := newUser("admin@medibook.local", "Iris", "Admin", models.RoleInsurance)
	users = append(users, adminUser)

	// Doctors: approved, each with a Monday-Friday 09:00-17:00 schedule.
	specialties := []string{"Cardiology", "Dermatology", "Pediatrics", "General Practice"}
	var doctors []interface{}
	var schedules []interface{}
	for i, specialty := range specialties {
		u := newUser(fmt.Sprintf("doctor%d@medibook.local", i+1), "Doc", fmt.Sprintf("Seed%d", i+1), models.RoleDoctor)
		users = append(users, u)
		doc := models.Doctor{
			ID:             uuid.NewString(),
			UserID:         u.ID,
			Specialization: specialty,
			Address:        fmt.Sprintf("%d Clinic Road", 10+i),
			ApprovalStatus: models.ApprovalApproved,
			CreatedAt:      now,
		}
		doctors = append(doctors, doc)
		for day := 1; day <= 5; day++ {
			schedules = append(schedules, models.WorkingHoursEntry{
				ID:        uuid.NewString(),
				DoctorID:  doc.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "17:00",
				CreatedAt: now,
			})
		}
	}

	// One doctor left pending so the approvals screen has work to do.
	pendingUser := newUser("pending@medibook.local", "Paula", "Pending", models.RoleDoctor)
	users = append(users, pendingUser)
	doctors = append(doctors, models.Doctor{
		ID:             uuid.NewString(),
		UserID:         pendingUser.ID,
		Specialization: "Neurology",
		Address:        "1 Review Lane",
		ApprovalStatus: models.ApprovalPending,
		CreatedAt:      now,
	})

	var patients []interface{}
	for i := 1; i <= 3; i++ {
		u := newUser(fmt.Sprintf("patient%d@medibook.local", i), "Pat", fmt.Sprintf("Seed%d", i), models.RolePatient)
		users = append(users, u)
		patients = append(patients, models.Patient{
			ID:          uuid.NewString(),
			UserID:      u.ID,
			DateOfBirth: fmt.Sprintf("199%d-0%d-1%d", i, i, i),
			Address:     fmt.Sprintf("%d Home Street", i),
			CreatedAt:   now,
		})
	}

	if _, err := database.Collection("users").InsertMany(ctx, users); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	if _, err := database.Collection("doctors").InsertMany(ctx, doctors); err != nil {
		log.Fatalf("failed to seed doctors: %v", err)
	}
	if _, err := database.Collection("patients").InsertMany(ctx, patients); err != nil {
		log.Fatalf("failed to seed patients: %v", err)
	}
	if _, err := database.Collection("doctor_schedules").InsertMany(ctx, schedules); err != nil {
		log.Fatalf("failed to seed schedules: %v", err)
	}

	log.Printf("seeded %d users, %d doctors, %d patients (password %q)", len(users), len(doctors), len(patients), seedPassword)
}
