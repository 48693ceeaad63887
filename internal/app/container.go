package app

import (
	"context"
	"log"
	"time"

	"whitekola/internal/assistant"
	"whitekola/internal/blobstore"
	"whitekola/internal/catalog"
	"whitekola/internal/config"
	"whitekola/internal/counseling"
	"whitekola/internal/cv"
	"whitekola/internal/database"
	dbpostgres "whitekola/internal/database/postgres"
	"whitekola/internal/docstore"
	"whitekola/internal/kvstore"
	"whitekola/internal/notify"
	"whitekola/internal/pkg/jwt"
	platformauth "whitekola/internal/platform/auth"
	"whitekola/internal/profiles"
	"whitekola/internal/session"
	jobsstore "whitekola/internal/store/jobs"
	"whitekola/internal/ws"
)

// Container owns every long-lived dependency: the database pool, the
// key-value cache, the per-user session manager and the shared stores.
// Handlers receive references from here and never construct their own.
type Container struct {
	Config config.Config
	DB     database.DB
	Logger *log.Logger

	Docs     docstore.Store
	KV       kvstore.Store
	Blobs    blobstore.Store
	JWT      jwt.Service
	Auth     *platformauth.Backend
	Profiles *profiles.Repository
	Catalog  *catalog.Repository

	Completer  assistant.Completer
	Mailer     notify.Mailer
	CVs        *cv.Service
	Counseling *counseling.Service
	Sessions   *session.Manager
	Jobs       *jobsstore.Store

	Hub    *ws.Hub
	Events *ws.Events
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := log.Default()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	docs := docstore.NewPostgres(db)
	kv := kvstore.NewRedis(cfg.Redis, logger)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	backend := platformauth.NewBackend(platformauth.NewPostgresRepository(db), jwtSvc)

	profileRepo := profiles.NewRepository(docs)
	catalogRepo := catalog.NewRepository(docs)

	// Blob storage is optional; without a bucket the CV export endpoint
	// reports itself unavailable and everything else keeps working.
	var blobs blobstore.Store
	if cfg.S3.Bucket != "" {
		s3Store, err := blobstore.NewS3(ctx, cfg.S3)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		blobs = s3Store
	} else {
		logger.Printf("[App] S3_BUCKET not set, CV export disabled")
	}

	completer := assistant.NewHTTPCompleter(cfg.Assistant.EndpointURL, cfg.Assistant.Timeout)
	mailer := notify.NewLogMailer(logger)

	c := &Container{
		Config:     cfg,
		DB:         db,
		Logger:     logger,
		Docs:       docs,
		KV:         kv,
		Blobs:      blobs,
		JWT:        jwtSvc,
		Auth:       backend,
		Profiles:   profileRepo,
		Catalog:    catalogRepo,
		Completer:  completer,
		Mailer:     mailer,
		CVs:        cv.NewService(docs, blobs, profileRepo, logger),
		Counseling: counseling.NewService(docs, mailer, cfg.App.CounselorEmail, logger),
		Sessions:   session.NewManager(backend, profileRepo, completer, kv, logger),
		Jobs:       jobsstore.New(catalogRepo, logger),
		Hub:        ws.NewHub(logger),
	}
	c.Events = ws.NewEvents(c.Hub)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
