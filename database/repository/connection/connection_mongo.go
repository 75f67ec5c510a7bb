package connectionRepo

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

// MongoConnectionRepo implements ConnectionRepository using MongoDB.
type MongoConnectionRepo struct {
	coll *mongo.Collection
}

// NewMongoConnectionRepo creates a new instance of ConnectionRepository using MongoDB.
func NewMongoConnectionRepo() ConnectionRepository {
	repo := &MongoConnectionRepo{coll: database.Collection("doctor_patient_requests")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoConnectionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "patient_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new connection request.
func (r *MongoConnectionRepo) Create(req *models.ConnectionRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("a request between this doctor and patient already exists: %w", err)
		}
		return fmt.Errorf("failed to create connection request: %w", err)
	}
	return nil
}

// GetByID retrieves a connection request by its unique ID.
func (r *MongoConnectionRepo) GetByID(id string) (*models.ConnectionRequest, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByPair retrieves the request between a doctor and a patient, if any.
func (r *MongoConnectionRepo) GetByPair(doctorID, patientID string) (*models.ConnectionRequest, error) {
	return r.findOne(bson.M{"doctor_id": doctorID, "patient_id": patientID})
}

func (r *MongoConnectionRepo) findOne(filter bson.M) (*models.ConnectionRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ConnectionRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch connection request: %w", err)
	}
	return &req, nil
}

// ListByDoctorAndStatus returns a doctor's requests in the given state.
func (r *MongoConnectionRepo) ListByDoctorAndStatus(doctorID, status string) ([]models.ConnectionRequest, error) {
	return r.find(bson.M{"doctor_id": doctorID, "status": status})
}

// ListByPatient returns all of a patient's requests, any state.
func (r *MongoConnectionRepo) ListByPatient(patientID string) ([]models.ConnectionRequest, error) {
	return r.find(bson.M{"patient_id": patientID})
}

func (r *MongoConnectionRepo) find(filter bson.M) ([]models.ConnectionRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode connection request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// SetStatus transitions a request's status by ID.
func (r *MongoConnectionRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update connection request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("connection request %s not found", id)
	}
	return nil
}

// SetPairStatus transitions the doctor-patient request from one state to
// another, e.g. accepted to rejected on disconnect.
func (r *MongoConnectionRepo) SetPairStatus(doctorID, patientID, fromStatus, toStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "patient_id": patientID, "status": fromStatus}
	result, err := r.coll.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"status": toStatus, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update connection between doctor %s and patient %s: %w", doctorID, patientID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no %s connection between doctor %s and patient %s", fromStatus, doctorID, patientID)
	}
	return nil
}

// DeletePending removes a still-pending request, used when the patient
// withdraws it.
func (r *MongoConnectionRepo) DeletePending(doctorID, patientID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "patient_id": patientID, "status": models.ConnectionPending}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete pending request: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no pending request between doctor %s and patient %s", doctorID, patientID)
	}
	return nil
}
