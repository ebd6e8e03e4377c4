package model

type TaskID string

type Task struct {
	ID          TaskID `json:"id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}
