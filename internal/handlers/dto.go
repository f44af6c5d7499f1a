package handlers

import (
	"github.com/Sonic3k/sonic-task-manager/internal/dateutil"
	"github.com/Sonic3k/sonic-task-manager/internal/focus"
	"github.com/Sonic3k/sonic-task-manager/internal/models"
	"github.com/Sonic3k/sonic-task-manager/internal/service"
)

// TaskDTO is the wire representation of a task. Dates go out as
// "2006-01-02" strings, timestamps as "2006-01-02 15:04:05".
type TaskDTO struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Complexity      string `json:"complexity"`
	Status          string `json:"status"`
	ProgressCurrent int    `json:"progressCurrent"`
	ProgressTotal   int    `json:"progressTotal"`
	ParentID        *int64 `json:"parentId,omitempty"`
	Deadline        string `json:"deadline,omitempty"`
	ScheduledDate   string `json:"scheduledDate,omitempty"`
	CompletedAt     string `json:"completedAt,omitempty"`
	SnoozedUntil    string `json:"snoozedUntil,omitempty"`
	FocusContext    string `json:"focusContext,omitempty"`
	Tags            string `json:"tags,omitempty"`
	Context         string `json:"context,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`

	// Calculated fields
	ProgressPercentage  int       `json:"progressPercentage"`
	DaysUntilDeadline   *int      `json:"daysUntilDeadline,omitempty"`
	UrgencyLevel        string    `json:"urgencyLevel,omitempty"`
	ComplexityLabel     string    `json:"complexityLabel"`
	DeadlineDescription string    `json:"deadlineDescription"`
	Overdue             bool      `json:"overdue"`
	Urgent              bool      `json:"urgent"`
	Subtasks            []TaskDTO `json:"subtasks,omitempty"`
}

// HabitSessionDTO is the wire representation of a habit session.
type HabitSessionDTO struct {
	ID              int64  `json:"id"`
	TaskID          int64  `json:"taskId"`
	SessionDate     string `json:"sessionDate"`
	DurationMinutes int    `json:"durationMinutes"`
	ProgressNote    string `json:"progressNote,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// WorkspaceDTO is the wire representation of the daily workspace.
type WorkspaceDTO struct {
	FocusTask          *TaskDTO                   `json:"focusTask"`
	NextUpStack        []TaskDTO                  `json:"nextUpStack"`
	QuickWins          []TaskDTO                  `json:"quickWins"`
	ActiveReminders    []TaskDTO                  `json:"activeReminders"`
	DailyMood          string                     `json:"dailyMood"`
	MoodDescription    string                     `json:"moodDescription"`
	MoodEmoji          string                     `json:"moodEmoji"`
	ShowSections       service.ShowSections       `json:"showSections"`
	WorkloadAssessment service.WorkloadAssessment `json:"workloadAssessment"`
}

func toTaskDTO(task *models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Type:            string(task.Type),
		Priority:        string(task.Priority),
		Complexity:      string(task.Complexity),
		Status:          string(task.Status),
		ProgressCurrent: task.ProgressCurrent,
		ProgressTotal:   task.ProgressTotal,
		ParentID:        task.ParentID,
		FocusContext:    task.FocusContext,
		Tags:            task.Tags,
		Context:         task.Context,
		CreatedAt:       dateutil.FormatDateTime(task.CreatedAt),
		UpdatedAt:       dateutil.FormatDateTime(task.UpdatedAt),

		ProgressPercentage:  task.ProgressPercentage(),
		DaysUntilDeadline:   task.DaysUntilDeadline,
		UrgencyLevel:        task.UrgencyLevel,
		ComplexityLabel:     task.ComplexityLabel(),
		DeadlineDescription: deadlineDescription(task),
		Overdue:             task.IsOverdue(),
		Urgent:              task.IsUrgent(),
	}

	if task.Deadline != nil {
		dto.Deadline = dateutil.FormatDate(*task.Deadline)
	}
	if task.ScheduledDate != nil {
		dto.ScheduledDate = dateutil.FormatDate(*task.ScheduledDate)
	}
	if task.CompletedAt != nil {
		dto.CompletedAt = dateutil.FormatDateTime(*task.CompletedAt)
	}
	if task.SnoozedUntil != nil {
		dto.SnoozedUntil = dateutil.FormatDateTime(*task.SnoozedUntil)
	}
	if len(task.Subtasks) > 0 {
		dto.Subtasks = toTaskDTOs(task.Subtasks)
	}
	return dto
}

func toTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		dtos = append(dtos, toTaskDTO(&tasks[i]))
	}
	return dtos
}

func deadlineDescription(task *models.Task) string {
	return dateutil.DeadlineDescription(task.Deadline)
}

func toHabitSessionDTO(session *models.HabitSession) HabitSessionDTO {
	return HabitSessionDTO{
		ID:              session.ID,
		TaskID:          session.TaskID,
		SessionDate:     dateutil.FormatDate(session.SessionDate),
		DurationMinutes: session.DurationMinutes,
		ProgressNote:    session.ProgressNote,
		CreatedAt:       dateutil.FormatDateTime(session.CreatedAt),
	}
}

func toHabitSessionDTOs(sessions []models.HabitSession) []HabitSessionDTO {
	dtos := make([]HabitSessionDTO, 0, len(sessions))
	for i := range sessions {
		dtos = append(dtos, toHabitSessionDTO(&sessions[i]))
	}
	return dtos
}

func toWorkspaceDTO(ws *service.Workspace) *WorkspaceDTO {
	dto := &WorkspaceDTO{
		NextUpStack:        toTaskDTOs(ws.NextUpStack),
		QuickWins:          toTaskDTOs(ws.QuickWins),
		ActiveReminders:    toTaskDTOs(ws.ActiveReminders),
		DailyMood:          string(ws.DailyMood),
		MoodDescription:    focus.MoodDescription(ws.DailyMood),
		MoodEmoji:          focus.MoodEmoji(ws.DailyMood),
		ShowSections:       ws.ShowSections,
		WorkloadAssessment: ws.WorkloadAssessment,
	}
	if ws.FocusTask != nil {
		focusDTO := toTaskDTO(ws.FocusTask)
		dto.FocusTask = &focusDTO
	}
	return dto
}
