package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB. Working
// hours and vacations live in separate collections.
type MongoScheduleRepo struct {
	hours     *mongo.Collection
	vacations *mongo.Collection
}

// NewMongoScheduleRepo creates a new instance of ScheduleRepository using MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	repo := &MongoScheduleRepo{
		hours:     database.Collection("doctor_schedules"),
		vacations: database.Collection("doctor_vacations"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes, including the unique (doctor_id, day_of_week)
// constraint that backs the one-entry-per-weekday rule.
func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.hours.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create working hours indexes: %w", err)
	}

	_, err = r.vacations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "end_date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create vacation indexes: %w", err)
	}
	return nil
}

// ListWorkingHours returns a doctor's weekly schedule ordered by weekday.
func (r *MongoScheduleRepo) ListWorkingHours(doctorID string) ([]models.WorkingHoursEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.hours.Find(ctx, bson.M{"doctor_id": doctorID},
		options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.WorkingHoursEntry
	for cursor.Next(ctx) {
		var e models.WorkingHoursEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode working hours entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AddWorkingHours inserts one weekday window. The unique index rejects a
// second entry for the same doctor and weekday.
func (r *MongoScheduleRepo) AddWorkingHours(entry *models.WorkingHoursEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.CreatedAt = time.Now()
	if _, err := r.hours.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("working hours for this weekday already exist: %w", err)
		}
		return fmt.Errorf("failed to add working hours: %w", err)
	}
	return nil
}

// DeleteWorkingHours removes one weekday window owned by the doctor.
func (r *MongoScheduleRepo) DeleteWorkingHours(doctorID, entryID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.hours.DeleteOne(ctx, bson.M{"id": entryID, "doctor_id": doctorID})
	if err != nil {
		return fmt.Errorf("failed to delete working hours %s: %w", entryID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("working hours entry %s not found", entryID)
	}
	return nil
}

// ListVacations returns all vacation ranges for the doctor.
func (r *MongoScheduleRepo) ListVacations(doctorID string) ([]models.VacationRange, error) {
	return r.findVacations(bson.M{"doctor_id": doctorID})
}

// ListVacationsEndingOnOrAfter returns vacation ranges still relevant at the
// given date (end_date >= date). ISO dates compare correctly as strings.
func (r *MongoScheduleRepo) ListVacationsEndingOnOrAfter(doctorID, date string) ([]models.VacationRange, error) {
	return r.findVacations(bson.M{"doctor_id": doctorID, "end_date": bson.M{"$gte": date}})
}

func (r *MongoScheduleRepo) findVacations(filter bson.M) ([]models.VacationRange, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.vacations.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	defer cursor.Close(ctx)

	var ranges []models.VacationRange
	for cursor.Next(ctx) {
		var v models.VacationRange
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode vacation range: %w", err)
		}
		ranges = append(ranges, v)
	}
	return ranges, nil
}

// AddVacation inserts a blackout range.
func (r *MongoScheduleRepo) AddVacation(v *models.VacationRange) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	v.CreatedAt = time.Now()
	if _, err := r.vacations.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to add vacation: %w", err)
	}
	return nil
}

// DeleteVacation removes a blackout range owned by the doctor.
func (r *MongoScheduleRepo) DeleteVacation(doctorID, vacationID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.vacations.DeleteOne(ctx, bson.M{"id": vacationID, "doctor_id": doctorID})
	if err != nil {
		return fmt.Errorf("failed to delete vacation %s: %w", vacationID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vacation %s not found", vacationID)
	}
	return nil
}
