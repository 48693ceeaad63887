package handler

import (
	"whitekola/internal/delivery/http/dto"
	"whitekola/internal/delivery/http/middleware"
	"whitekola/internal/domain/job"
	"whitekola/internal/feeds"
	"whitekola/internal/pkg/response"
	"whitekola/internal/session"
	jobsstore "whitekola/internal/store/jobs"
	"whitekola/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	store    *jobsstore.Store
	sessions *session.Manager
	events   *ws.Events
}

func NewJobsHandler(store *jobsstore.Store, sessions *session.Manager, events *ws.Events) *JobsHandler {
	return &JobsHandler{store: store, sessions: sessions, events: events}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/meta", h.Meta)
}

func (h *JobsHandler) RegisterProtected(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Post)
}

// List refreshes the catalog and returns the filtered view. Filter
// criteria come in as query parameters and are applied to a snapshot, so
// concurrent requests never see each other's criteria.
func (h *JobsHandler) List(c fiber.Ctx) error {
	h.store.FetchAll(c.Context())
	st := h.store.State()
	if st.Err != "" {
		return middleware.NewAppError(fiber.StatusBadGateway, st.Err, nil, nil)
	}

	filter := job.Filter{
		Location: c.Query("location"),
		JobType:  c.Query("jobType"),
		Sector:   c.Query("sector"),
		Search:   c.Query("search"),
	}

	view := st.Jobs
	if !filter.IsEmpty() {
		view = make([]job.Posting, 0, len(st.Jobs))
		for _, p := range st.Jobs {
			if filter.Matches(p) {
				view = append(view, p)
			}
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Jobs:   view,
		Filter: filter,
		Total:  len(view),
	})
}

func (h *JobsHandler) Meta(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobMetaResponse{
		Sectors:   feeds.Sectors,
		Locations: feeds.Locations,
		JobTypes:  []string{string(job.TypeRemote), string(job.TypeHybrid), string(job.TypeOnsite)},
	})
}

func (h *JobsHandler) Post(c fiber.Ctx) error {
	sess, err := sessionFromCtx(c, h.sessions)
	if err != nil {
		return err
	}

	var req dto.PostJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Title == "" || req.Company == "" {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Title and company are required", nil, nil)
	}

	appType := job.ApplicationType(req.ApplicationType)
	if appType == "" {
		appType = job.ApplicationInternal
	}
	if appType == job.ApplicationExternal && req.ApplicationLink == "" {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "External jobs need an application link", nil, nil)
	}

	id, err := h.store.Post(c.Context(), job.Posting{
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		Location:        req.Location,
		JobType:         job.Type(req.JobType),
		Sector:          req.Sector,
		Salary:          req.Salary,
		Deadline:        req.Deadline,
		PostedBy:        sess.UserID,
		ApplicationType: appType,
		ApplicationLink: req.ApplicationLink,
		IsExternal:      appType == job.ApplicationExternal,
		Source:          "WhiteKola",
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, "Failed to post job", nil, err)
	}

	h.events.JobsUpdated("post", 1)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.PostJobResponse{ID: id})
}
