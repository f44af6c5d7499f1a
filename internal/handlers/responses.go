package handlers

import (
	"github.com/Sonic3k/sonic-task-manager/internal/service"
)

// BaseResponse is the common envelope for all API responses
type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TaskResponse wraps a single task
type TaskResponse struct {
	BaseResponse
	Task *TaskDTO `json:"task,omitempty"`
}

// TaskListResponse wraps a list of tasks
type TaskListResponse struct {
	BaseResponse
	Tasks []TaskDTO `json:"tasks"`
}

// PaginatedTaskResponse wraps a filtered page of tasks
type PaginatedTaskResponse struct {
	BaseResponse
	Tasks      []TaskDTO           `json:"tasks"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

// BulkOperationResponse wraps the outcome of a bulk update
type BulkOperationResponse struct {
	BaseResponse
	Result *service.BulkOperationResult `json:"result,omitempty"`
}

// StatsResponse wraps the studio dashboard counters
type StatsResponse struct {
	BaseResponse
	Stats *service.TaskStats `json:"stats,omitempty"`
}

// WorkspaceResponse wraps the derived daily workspace
type WorkspaceResponse struct {
	BaseResponse
	Workspace *WorkspaceDTO `json:"workspace,omitempty"`
}

// PreferencesResponse wraps the full preference map
type PreferencesResponse struct {
	BaseResponse
	Preferences map[string]string `json:"preferences,omitempty"`
}

// PreferenceValueResponse wraps a single preference lookup
type PreferenceValueResponse struct {
	BaseResponse
	Key   string `json:"key"`
	Value string `json:"value"`
}

// HabitSessionResponse wraps a single habit session
type HabitSessionResponse struct {
	BaseResponse
	Session *HabitSessionDTO `json:"session,omitempty"`
}

// HabitSessionListResponse wraps a list of habit sessions
type HabitSessionListResponse struct {
	BaseResponse
	Sessions []HabitSessionDTO `json:"sessions"`
	Count    int64             `json:"count,omitempty"`
}

func okResponse(message string) BaseResponse {
	return BaseResponse{Success: true, Message: message}
}

func errorResponse(errText, message string) BaseResponse {
	return BaseResponse{Success: false, Error: errText, Message: message}
}
