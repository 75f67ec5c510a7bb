package recordRepo

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

// MongoRecordRepo implements RecordRepository using MongoDB. Prescriptions
// are embedded in their record document.
type MongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo creates a new instance of RecordRepository using MongoDB.
func NewMongoRecordRepo() RecordRepository {
	repo := &MongoRecordRepo{coll: database.Collection("medical_records")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecordRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new medical record with its prescriptions.
func (r *MongoRecordRepo) Create(rec *models.MedicalRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rec.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

// ListByPatient returns a patient's full history, newest first.
func (r *MongoRecordRepo) ListByPatient(patientID string) ([]models.MedicalRecord, error) {
	return r.find(bson.M{"patient_id": patientID})
}

// ListByPatientAndDoctor returns the records one doctor wrote for a patient.
func (r *MongoRecordRepo) ListByPatientAndDoctor(patientID, doctorID string) ([]models.MedicalRecord, error) {
	return r.find(bson.M{"patient_id": patientID, "doctor_id": doctorID})
}

func (r *MongoRecordRepo) find(filter bson.M) ([]models.MedicalRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.MedicalRecord
	for cursor.Next(ctx) {
		var rec models.MedicalRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode medical record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
