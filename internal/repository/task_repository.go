package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"pdf-insights/internal/domain"
	apperrors "pdf-insights/pkg/errors"
)

// taskFile mirrors the external task descriptor layout.
type taskFile struct {
	Persona struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// FileTaskRepository loads the task descriptor from a JSON file.
type FileTaskRepository struct {
	logger domain.Logger
}

func NewTaskRepository(logger domain.Logger) domain.TaskRepository {
	return &FileTaskRepository{logger: logger}
}

// Load reads and validates the task descriptor. A missing file or
// missing required keys is fatal for the analysis stage.
func (r *FileTaskRepository) Load(path string) (*domain.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewMissingInputError("task file not found", domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var tf taskFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, apperrors.NewValidationError("task file is not valid JSON", err.Error())
	}

	task := &domain.Task{
		Persona:     tf.Persona.Role,
		JobToBeDone: tf.JobToBeDone.Task,
	}
	if err := task.Validate(); err != nil {
		return nil, apperrors.NewValidationError("task file is incomplete", err.Error())
	}

	r.logger.Debug("Loaded task descriptor", "path", path)
	return task, nil
}
