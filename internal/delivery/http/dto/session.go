package dto

import (
	"whitekola/internal/domain/chat"
)

type ChatResponse struct {
	Messages  []chat.Message `json:"messages"`
	IsLoading bool           `json:"isLoading"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SettingsResponse struct {
	DarkMode bool   `json:"darkMode"`
	Language string `json:"language"`
}

type UpdateSettingsRequest struct {
	DarkMode *bool   `json:"darkMode"`
	Language *string `json:"language"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	PhotoURL *string `json:"photoURL"`
}

type BookingRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes"`
}

type ExportResponse struct {
	URL string `json:"url"`
}
