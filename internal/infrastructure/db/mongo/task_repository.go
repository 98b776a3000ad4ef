package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, coll: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	id, err := nextID(ctx, r.db, tasksCollection)
	if err != nil {
		return nil, err
	}

	created := *task
	created.ID = id
	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// FindByOwner returns the owner's tasks matching the filter, newest-created
// first. Unknown status values fall through without constraining the query.
func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID int64, filter ports.TaskFilter) ([]domain.Task, error) {
	query := bson.M{"user_id": ownerID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	switch filter.Status {
	case "completed":
		query["is_completed"] = true
	case "pending":
		query["is_completed"] = false
	}

	cur, err := r.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := []domain.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// CountsByOwner aggregates the number of tasks per owning user.
func (r *TaskRepository) CountsByOwner(ctx context.Context) (map[int64]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$user_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count tasks by owner: %w", err)
	}

	var rows []struct {
		UserID int64 `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode task counts: %w", err)
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

// FindDueOn returns incomplete tasks whose deadline falls within the calendar
// day starting at dayStart.
func (r *TaskRepository) FindDueOn(ctx context.Context, dayStart time.Time) ([]domain.Task, error) {
	query := bson.M{
		"is_completed": false,
		"deadline": bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		},
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find due tasks: %w", err)
	}

	var tasks []domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode due tasks: %w", err)
	}
	return tasks, nil
}

// FindUpcoming returns incomplete tasks with a deadline at or after now,
// soonest first. ownerID 0 means all owners.
func (r *TaskRepository) FindUpcoming(ctx context.Context, ownerID int64, now time.Time, limit int) ([]domain.Task, error) {
	query := bson.M{
		"is_completed": false,
		"deadline":     bson.M{"$gte": now},
	}
	if ownerID != 0 {
		query["user_id"] = ownerID
	}

	cur, err := r.coll.Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "deadline", Value: 1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find upcoming tasks: %w", err)
	}

	tasks := []domain.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode upcoming tasks: %w", err)
	}
	return tasks, nil
}

// EnsureIndexes creates the query indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_completed", Value: 1}, {Key: "deadline", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
