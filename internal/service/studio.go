package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/store"
)

// Bulk operation vocabulary. This is an external contract; the HTTP layer
// passes operation names through verbatim.
const (
	OpComplete         = "complete"
	OpSnooze           = "snooze"
	OpUpdateStatus     = "update_status"
	OpUpdatePriority   = "update_priority"
	OpUpdateComplexity = "update_complexity"
	OpUpdateDeadline   = "update_deadline"
	OpDelete           = "delete"
)

// Pagination describes one page of a result set. Page is zero-based.
type Pagination struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// PaginatedTasks is one page of filtered tasks.
type PaginatedTasks struct {
	Tasks      []models.Task
	Pagination Pagination
}

// BulkUpdateInput is one bulk operation applied to many task ids.
type BulkUpdateInput struct {
	TaskIDs       []int64
	Operation     string
	SnoozeDays    *int
	NewStatus     *models.TaskStatus
	NewPriority   *models.TaskPriority
	NewComplexity *models.TaskComplexity
	NewDeadline   *time.Time
}

// BulkOperationResult accumulates per-item outcomes of a bulk operation.
// Items are processed sequentially and independently; the operation as a
// whole is never transactional.
type BulkOperationResult struct {
	Operation         string   `json:"operation"`
	TotalRequested    int      `json:"totalRequested"`
	SuccessCount      int      `json:"successCount"`
	FailureCount      int      `json:"failureCount"`
	IsCompleteSuccess bool     `json:"isCompleteSuccess"`
	Errors            []string `json:"errors"`
	ProcessedTaskIDs  []int64  `json:"processedTaskIds"`
}

// AddSuccess records a successfully processed task id.
func (r *BulkOperationResult) AddSuccess(taskID int64) {
	r.ProcessedTaskIDs = append(r.ProcessedTaskIDs, taskID)
	r.SuccessCount++
}

// AddError records an itemized failure.
func (r *BulkOperationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.FailureCount++
}

// TaskStats aggregates top-level task counts for the studio dashboard.
type TaskStats struct {
	TotalTasks          int64 `json:"totalTasks"`
	CompletedTasks      int64 `json:"completedTasks"`
	OverdueTasks        int64 `json:"overdueTasks"`
	UrgentTasks         int64 `json:"urgentTasks"`
	HighPriorityTasks   int64 `json:"highPriorityTasks"`
	MediumPriorityTasks int64 `json:"mediumPriorityTasks"`
	LowPriorityTasks    int64 `json:"lowPriorityTasks"`
	DeadlineTasks       int64 `json:"deadlineTasks"`
	HabitTasks          int64 `json:"habitTasks"`
	ReminderTasks       int64 `json:"reminderTasks"`
	EventTasks          int64 `json:"eventTasks"`
}

// GetTasksPaginated runs the filtered top-level task query and applies the
// derived-field post-filters after enrichment.
func (s *TaskService) GetTasksPaginated(filter *store.TaskFilter, page store.PageRequest) (*PaginatedTasks, error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size < 1 {
		page.Size = 20
	}
	if page.Size > 100 {
		page.Size = 100
	}

	tasks, total, err := s.tasks.FindPage(filter, page)
	if err != nil {
		return nil, err
	}
	enrichTasks(tasks)

	if filter.HasPostFilters() {
		filtered := tasks[:0]
		for i := range tasks {
			ok, err := s.matchesPostFilters(&tasks[i], filter)
			if err != nil {
				return nil, err
			}
			if ok {
				filtered = append(filtered, tasks[i])
			}
		}
		tasks = filtered
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	result := &PaginatedTasks{
		Tasks: tasks,
		Pagination: Pagination{
			Page:          page.Page,
			Size:          page.Size,
			TotalElements: total,
			TotalPages:    totalPages,
			First:         page.Page == 0,
			Last:          page.Page >= totalPages-1,
			HasNext:       page.Page < totalPages-1,
			HasPrevious:   page.Page > 0,
		},
	}
	return result, nil
}

func (s *TaskService) matchesPostFilters(task *models.Task, filter *store.TaskFilter) (bool, error) {
	if filter.IsOverdue != nil && *filter.IsOverdue != task.IsOverdue() {
		return false, nil
	}
	if filter.IsUrgent != nil && *filter.IsUrgent != task.IsUrgent() {
		return false, nil
	}
	if filter.HasSubtasks != nil {
		subtasks, err := s.tasks.FindByParentID(task.ID)
		if err != nil {
			return false, err
		}
		if *filter.HasSubtasks != (len(subtasks) > 0) {
			return false, nil
		}
	}
	return true, nil
}

// BulkUpdateTasks applies one operation to each requested task id in order.
// A missing id or failed item is recorded and does not stop the rest.
func (s *TaskService) BulkUpdateTasks(input BulkUpdateInput) (*BulkOperationResult, error) {
	if len(input.TaskIDs) == 0 {
		return nil, fmt.Errorf("%w: no task ids provided", ErrInvalidArgument)
	}
	if !isKnownOperation(input.Operation) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, input.Operation)
	}

	result := &BulkOperationResult{
		Operation:      input.Operation,
		TotalRequested: len(input.TaskIDs),
	}

	for _, id := range input.TaskIDs {
		if err := s.applyBulkOperation(id, input); err != nil {
			result.AddError(fmt.Sprintf("task %d: %v", id, err))
		} else {
			result.AddSuccess(id)
		}
	}
	result.IsCompleteSuccess = result.FailureCount == 0

	return result, nil
}

func isKnownOperation(op string) bool {
	switch op {
	case OpComplete, OpSnooze, OpUpdateStatus, OpUpdatePriority,
		OpUpdateComplexity, OpUpdateDeadline, OpDelete:
		return true
	}
	return false
}

func (s *TaskService) applyBulkOperation(id int64, input BulkUpdateInput) error {
	switch input.Operation {
	case OpComplete:
		return s.CompleteTask(id)

	case OpSnooze:
		days := 1
		if input.SnoozeDays != nil {
			days = *input.SnoozeDays
		}
		return s.SnoozeTask(id, dateutil.Now().AddDate(0, 0, days))

	case OpDelete:
		return s.DeleteTask(id)

	case OpUpdateStatus:
		if input.NewStatus == nil {
			return fmt.Errorf("%w: newStatus is required", ErrInvalidArgument)
		}
		return s.patchTask(id, func(task *models.Task) {
			task.Status = *input.NewStatus
		})

	case OpUpdatePriority:
		if input.NewPriority == nil {
			return fmt.Errorf("%w: newPriority is required", ErrInvalidArgument)
		}
		return s.patchTask(id, func(task *models.Task) {
			task.Priority = *input.NewPriority
		})

	case OpUpdateComplexity:
		if input.NewComplexity == nil {
			return fmt.Errorf("%w: newComplexity is required", ErrInvalidArgument)
		}
		return s.patchTask(id, func(task *models.Task) {
			task.Complexity = *input.NewComplexity
		})

	case OpUpdateDeadline:
		return s.patchTask(id, func(task *models.Task) {
			task.Deadline = input.NewDeadline
		})
	}
	return fmt.Errorf("%w: %q", ErrInvalidOperation, input.Operation)
}

func (s *TaskService) patchTask(id int64, apply func(*models.Task)) error {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	apply(task)
	return s.tasks.Save(task)
}

// GetTaskStatistics aggregates dashboard counts.
func (s *TaskService) GetTaskStatistics() (*TaskStats, error) {
	stats := &TaskStats{}

	counts := []struct {
		dst  *int64
		load func() (int64, error)
	}{
		{&stats.CompletedTasks, func() (int64, error) { return s.tasks.CountMainByStatus(models.StatusDone) }},
		{&stats.HighPriorityTasks, func() (int64, error) { return s.tasks.CountMainByPriority(models.PriorityHigh) }},
		{&stats.MediumPriorityTasks, func() (int64, error) { return s.tasks.CountMainByPriority(models.PriorityMedium) }},
		{&stats.LowPriorityTasks, func() (int64, error) { return s.tasks.CountMainByPriority(models.PriorityLow) }},
		{&stats.DeadlineTasks, func() (int64, error) { return s.tasks.CountMainByType(models.TypeDeadline) }},
		{&stats.HabitTasks, func() (int64, error) { return s.tasks.CountMainByType(models.TypeHabit) }},
		{&stats.ReminderTasks, func() (int64, error) { return s.tasks.CountMainByType(models.TypeReminder) }},
		{&stats.EventTasks, func() (int64, error) { return s.tasks.CountMainByType(models.TypeEvent) }},
	}
	for _, c := range counts {
		v, err := c.load()
		if err != nil {
			return nil, err
		}
		*c.dst = v
	}

	todo, err := s.tasks.CountMainByStatus(models.StatusTodo)
	if err != nil {
		return nil, err
	}
	doing, err := s.tasks.CountMainByStatus(models.StatusDoing)
	if err != nil {
		return nil, err
	}
	stats.TotalTasks = todo + doing

	today := dateutil.Today()
	if stats.OverdueTasks, err = s.tasks.CountOverdue(today); err != nil {
		return nil, err
	}
	// Urgency window for stats is the wide 3-day one.
	if stats.UrgentTasks, err = s.tasks.CountUrgentWindow(today, dateutil.AddDays(today, 3)); err != nil {
		return nil, err
	}

	return stats, nil
}
