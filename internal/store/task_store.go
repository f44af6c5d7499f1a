package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
)

// TaskFilter narrows a paginated task query. Nil fields are ignored.
type TaskFilter struct {
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	Complexity   *models.TaskComplexity
	Type         *models.TaskType
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	SearchQuery  string

	// Post-filters evaluated on enriched tasks, not in SQL.
	IsOverdue   *bool
	IsUrgent    *bool
	HasSubtasks *bool
}

// IsEmpty reports whether no SQL-level filter is set.
func (f *TaskFilter) IsEmpty() bool {
	return f == nil ||
		(f.Status == nil && f.Priority == nil && f.Complexity == nil &&
			f.Type == nil && f.DeadlineFrom == nil && f.DeadlineTo == nil &&
			f.SearchQuery == "" && f.IsOverdue == nil && f.IsUrgent == nil &&
			f.HasSubtasks == nil)
}

// HasPostFilters reports whether any derived-field filter is set.
func (f *TaskFilter) HasPostFilters() bool {
	return f != nil && (f.IsOverdue != nil || f.IsUrgent != nil || f.HasSubtasks != nil)
}

// PageRequest describes pagination and sorting for a task query.
// Page is zero-based.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// TaskStore is the persistence collaborator for tasks. Parent/child
// traversal always goes through the store; tasks never hold in-memory
// subtask pointers beyond the per-request derived field.
type TaskStore interface {
	FindByID(id int64) (*models.Task, error)
	FindByIDs(ids []int64) ([]models.Task, error)
	FindActive(now time.Time) ([]models.Task, error)
	FindByParentID(parentID int64) ([]models.Task, error)
	FindQuickWins() ([]models.Task, error)
	FindActiveReminders(now, updatedBefore time.Time) ([]models.Task, error)
	FindPage(filter *TaskFilter, page PageRequest) ([]models.Task, int64, error)
	CountAll() (int64, error)
	CountMainByStatus(status models.TaskStatus) (int64, error)
	CountMainByPriority(priority models.TaskPriority) (int64, error)
	CountMainByType(taskType models.TaskType) (int64, error)
	CountOverdue(today time.Time) (int64, error)
	CountUrgentWindow(today, until time.Time) (int64, error)
	Save(task *models.Task) error
	Delete(id int64) error
	DeleteMany(ids []int64) error
}

// GormTaskStore implements TaskStore on a GORM connection.
type GormTaskStore struct {
	db *gorm.DB
}

// NewTaskStore wraps a GORM connection in a TaskStore.
func NewTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

func (s *GormTaskStore) FindByID(id int64) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *GormTaskStore) FindByIDs(ids []int64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := s.db.Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

// FindActive returns tasks that are not done and either never snoozed or
// whose snooze has expired.
func (s *GormTaskStore) FindActive(now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("status != ?", models.StatusDone).
		Where("snoozed_until IS NULL OR snoozed_until <= ?", now).
		Find(&tasks).Error
	return tasks, err
}

func (s *GormTaskStore) FindByParentID(parentID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("parent_id = ?", parentID).Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

// FindQuickWins returns top-level todo tasks that are high priority and
// easy complexity.
func (s *GormTaskStore) FindQuickWins() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("parent_id IS NULL").
		Where("status = ?", models.StatusTodo).
		Where("priority = ?", models.PriorityHigh).
		Where("complexity = ?", models.ComplexityEasy).
		Find(&tasks).Error
	return tasks, err
}

// FindActiveReminders returns surfacing candidates: reminder-type tasks
// that are not done, not currently snoozed, and untouched since
// updatedBefore, newest update first.
func (s *GormTaskStore) FindActiveReminders(now, updatedBefore time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("type = ?", models.TypeReminder).
		Where("status != ?", models.StatusDone).
		Where("snoozed_until IS NULL OR snoozed_until <= ?", now).
		Where("updated_at <= ?", updatedBefore).
		Order("updated_at desc").
		Find(&tasks).Error
	return tasks, err
}

// sortColumns maps API sort keys to columns. Anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"deadline":  "deadline",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

// FindPage runs the filtered, paginated top-level task query. With no
// explicit sort key it applies the smart ordering: overdue first, then the
// 3-day urgency window, then priority, then recency.
func (s *GormTaskStore) FindPage(filter *TaskFilter, page PageRequest) ([]models.Task, int64, error) {
	query := s.db.Model(&models.Task{}).Where("parent_id IS NULL")

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Priority != nil {
			query = query.Where("priority = ?", *filter.Priority)
		}
		if filter.Complexity != nil {
			query = query.Where("complexity = ?", *filter.Complexity)
		}
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.DeadlineFrom != nil {
			query = query.Where("deadline IS NULL OR deadline >= ?", *filter.DeadlineFrom)
		}
		if filter.DeadlineTo != nil {
			query = query.Where("deadline IS NULL OR deadline <= ?", *filter.DeadlineTo)
		}
		if q := strings.TrimSpace(filter.SearchQuery); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Session(&gorm.Session{})
	if col, ok := sortColumns[page.SortBy]; ok && page.SortBy != "" && page.SortBy != "smart" {
		dir := "asc"
		if strings.EqualFold(page.SortDir, "desc") {
			dir = "desc"
		}
		query = query.Order(col + " " + dir)
	} else {
		today := dateutil.Today()
		urgent := dateutil.AddDays(today, 3)
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL: "CASE WHEN deadline IS NOT NULL AND deadline < ? THEN 1 " +
					"WHEN deadline IS NOT NULL AND deadline <= ? THEN 2 ELSE 3 END, " +
					"CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, " +
					"created_at DESC",
				Vars:                []interface{}{today, urgent},
				WithoutParentheses: true,
			},
		})
	}

	var tasks []models.Task
	err := query.Limit(page.Size).Offset(page.Page * page.Size).Find(&tasks).Error
	return tasks, total, err
}

func (s *GormTaskStore) CountAll() (int64, error) {
	var count int64
	err := s.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

func (s *GormTaskStore) CountMainByStatus(status models.TaskStatus) (int64, error) {
	return s.countMainBy("status = ?", string(status))
}

func (s *GormTaskStore) CountMainByPriority(priority models.TaskPriority) (int64, error) {
	return s.countMainBy("priority = ?", string(priority))
}

func (s *GormTaskStore) CountMainByType(taskType models.TaskType) (int64, error) {
	return s.countMainBy("type = ?", string(taskType))
}

func (s *GormTaskStore) countMainBy(cond string, value string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("parent_id IS NULL").
		Where(cond, value).
		Count(&count).Error
	return count, err
}

func (s *GormTaskStore) CountOverdue(today time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("deadline IS NOT NULL AND deadline < ?", today).
		Where("status != ?", models.StatusDone).
		Count(&count).Error
	return count, err
}

func (s *GormTaskStore) CountUrgentWindow(today, until time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("deadline IS NOT NULL AND deadline BETWEEN ? AND ?", today, until).
		Where("status != ?", models.StatusDone).
		Count(&count).Error
	return count, err
}

func (s *GormTaskStore) Save(task *models.Task) error {
	return s.db.Save(task).Error
}

func (s *GormTaskStore) Delete(id int64) error {
	return s.db.Delete(&models.Task{}, id).Error
}

func (s *GormTaskStore) DeleteMany(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Delete(&models.Task{}, ids).Error
}

// Ensure GormTaskStore implements TaskStore at compile time.
var _ TaskStore = (*GormTaskStore)(nil)
