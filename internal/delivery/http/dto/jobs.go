package dto

import "whitekola/internal/domain/job"

type JobListResponse struct {
	Jobs   []job.Posting `json:"jobs"`
	Filter job.Filter    `json:"filter"`
	Total  int           `json:"total"`
}

type PostJobRequest struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	JobType         string `json:"jobType"`
	Sector          string `json:"sector"`
	Salary          string `json:"salary"`
	Deadline        string `json:"deadline"`
	ApplicationType string `json:"applicationType"`
	ApplicationLink string `json:"applicationLink"`
}

type PostJobResponse struct {
	ID string `json:"id"`
}

type JobMetaResponse struct {
	Sectors   []string `json:"sectors"`
	Locations []string `json:"locations"`
	JobTypes  []string `json:"jobTypes"`
}
