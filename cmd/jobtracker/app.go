package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

// application is the wired object graph shared by the commands.
type application struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	profile *profile.Profile

	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
	scoreRepo   repositories.ScoreRepository
	docRepo     repositories.DocumentRepository
	appRepo     repositories.ApplicationRepository

	publisher services.EventPublisher
	activity  services.ActivityService
	storage   services.StorageService
	scorer    services.ScoringService
	worker    services.Worker
	jobs      services.JobService
	letters   services.LetterService
	packages  services.PackageService
	notion    services.NotionSync
	dashboard services.DashboardService
}

type appOptions struct {
	// withWorker creates the background scoring worker. It is not started.
	withWorker bool
}

func newApplication(ctx context.Context, opts appOptions) (*application, error) {
	cfg := config.Load()

	log, err := config.NewLogger(jsonOutput || cfg.Log.JSON, debug || cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found, using environment")
	}

	path := profilePath
	if path == "" {
		path = cfg.Profile.Path
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info("profile loaded", zap.String("version", p.Version), zap.Int("categories", len(p.Categories)))

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &application{
		cfg:         cfg,
		log:         log,
		db:          db,
		profile:     p,
		jobRepo:     repositories.NewJobRepository(db),
		companyRepo: repositories.NewCompanyRepository(db),
		scoreRepo:   repositories.NewScoreRepository(db),
		docRepo:     repositories.NewDocumentRepository(db),
		appRepo:     repositories.NewApplicationRepository(db),
	}

	a.publisher = services.NewNoopPublisher()
	if cfg.AMQP.URL != "" {
		publisher, err := services.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn("event publishing disabled", zap.Error(err))
		} else {
			a.publisher = publisher
			log.Info("publishing activity events", zap.String("exchange", cfg.AMQP.Exchange))
		}
	}
	a.activity = services.NewActivityService(repositories.NewActivityRepository(db), a.publisher, log)

	a.storage = services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.OutputPath)
	if err := a.storage.EnsureDirs(); err != nil {
		a.Close()
		return nil, err
	}

	a.scorer = services.NewScoringService(a.jobRepo, a.scoreRepo, a.activity, p, log)

	var queue services.ScoreQueue
	if opts.withWorker {
		a.worker = services.NewWorker(a.jobRepo, a.scorer, services.WorkerOptions{
			Concurrency:  cfg.Worker.Concurrency,
			QueueSize:    cfg.Worker.QueueSize,
			PollInterval: cfg.Worker.PollInterval,
			BatchSize:    cfg.Worker.BatchSize,
		}, log)
		if cfg.Storage.AutoScore {
			queue = a.worker
		}
	}

	fetcher := services.NewPostingFetcher(nil, cfg.Storage.FetchTimeout)
	a.jobs = services.NewJobService(a.jobRepo, a.companyRepo, a.scoreRepo, a.docRepo, a.appRepo,
		a.activity, services.NewPostingExtractor(), fetcher, queue, log)

	composer := letter.NewComposer(p.Candidate, letter.DefaultTemplates())
	a.letters = services.NewLetterService(a.jobRepo, a.scoreRepo, a.docRepo, a.storage, a.activity,
		composer, p.Candidate.Name, cfg.Storage.LetterDocx, log)

	remote, err := newRemoteStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.packages = services.NewPackageService(a.jobRepo, a.docRepo, a.letters, a.storage, a.activity,
		remote, cfg.Remote.BaseFolder, cfg.Storage.ResumePath, log)

	var notionClient services.NotionClient
	if cfg.Notion.Enabled() {
		notionClient = services.NewNotionClient(cfg.Notion.Token)
	}
	a.notion = services.NewNotionSync(notionClient, services.NotionDatabases{
		Jobs:        cfg.Notion.JobsDatabaseID,
		Companies:   cfg.Notion.CompaniesDatabaseID,
		ReadingList: cfg.Notion.ReadingDatabaseID,
	}, a.jobRepo, a.companyRepo, a.activity, log)

	a.dashboard = services.NewDashboardService(a.jobRepo, a.appRepo)
	return a, nil
}

// newRemoteStore returns nil when no backend is configured.
func newRemoteStore(ctx context.Context, cfg *config.Config) (services.RemoteStore, error) {
	switch cfg.Remote.Backend {
	case "":
		return nil, nil
	case "drive":
		return services.NewDriveStore(ctx, cfg.Drive.CredentialsFile, cfg.Drive.RootFolderID, cfg.Drive.ConvertMarkdown)
	case "s3":
		return services.NewS3Store(ctx, services.S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
			LinkExpiry:      cfg.S3.LinkExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown REMOTE_BACKEND %q (use drive or s3)", cfg.Remote.Backend)
	}
}

func (a *application) Close() {
	if a.worker != nil {
		a.worker.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
