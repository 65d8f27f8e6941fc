package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByUserID retrieves all tasks owned by a user, ordered by position
func (r *TaskRepository) GetByUserID(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("position").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByUserIDAndStatus retrieves a user's tasks in a single status column,
// ordered by position
func (r *TaskRepository) GetByUserIDAndStatus(ctx context.Context, userID, status string) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetMaxPosition returns the highest position within a (userID, status)
// partition, or 0 when the partition is empty
func (r *TaskRepository) GetMaxPosition(ctx context.Context, userID, status string) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("user_id = ? AND status = ?", userID, status).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

// UpdateFields applies a partial update to a task. The row is loaded first so
// a missing task and a value-equal update produce distinct outcomes.
func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		return tx.Model(&model.Task{}).Where("id = ?", id).Updates(fields).Error
	})
}

// Reorder sets each task's position to its index in the supplied sequence.
// All ids must exist; the whole batch is applied in one transaction, so a
// failure on any element leaves every position untouched.
func (r *TaskRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Task{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return ErrTaskNotFound
		}

		for i, id := range ids {
			if err := tx.Model(&model.Task{}).Where("id = ?", id).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
