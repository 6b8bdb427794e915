package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	_ "github.com/glebarez/sqlite"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"

	"fisheye/cmd/website/internal/assetserve"
	"fisheye/cmd/website/internal/cache"
	"fisheye/cmd/website/internal/configuration"
	"fisheye/cmd/website/internal/home"
	"fisheye/cmd/website/internal/mediaapi"
	"fisheye/cmd/website/internal/photographer"
	"fisheye/pkg/assets"
	"fisheye/pkg/gallery"
	"fisheye/pkg/services"
)

var (
	Version string = "development"
	appName string = "fisheye"

	//go:embed app
	appFS embed.FS

	//go:embed sql-migrations
	sqlMigrationsFs embed.FS

	config configuration.Config

	/* Services */
	assetStore       assets.AssetStore
	contactService   services.ContactServicer
	db               *sqlz.DB
	likeService      services.LikeServicer
	mediaService     *services.MediaService
	renderer         rendering.TemplateRenderer
	sessionManager   *gallery.SessionManager
	thumbnailCreator cache.ThumbnailCreator

	/* Controllers */
	assetController        assetserve.AssetController
	homeController         home.HomeHandlers
	mediaApiController     mediaapi.MediaApiHandlers
	photographerController photographer.PhotographerHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("datafile", config.DataFile),
		slog.String("assetsource", config.AssetSource),
		slog.String("likestore", config.LikeStore),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	mediaService = services.NewMediaService(services.MediaServiceConfig{
		Source:       config.DataFile,
		FetchTimeout: time.Duration(config.FetchTimeoutSec) * time.Second,
	})

	if err = mediaService.Reload(shutdownCtx); err != nil {
		// The pages render their empty states until a reload succeeds.
		slog.Error("failed to load media document", "error", err)
	}

	if err = mediaService.StartWatching(); err != nil {
		slog.Error("failed to watch media document", "error", err)
	}

	defer mediaService.StopWatching()

	likeService = services.NewLikeService(services.LikeServiceConfig{
		Store: setupLikeStore(),
	})

	contactService = services.NewContactService(services.ContactServiceConfig{
		EmailApiKey: config.EmailApiKey,
		FromName:    "Fisheye",
		FromEmail:   "noreply@fisheye.example",
		Inbox:       config.ContactInbox,
	})

	assetStore = setupAssetStore()

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	sessionManager = gallery.NewSessionManager(gallery.SessionManagerConfig{
		TTL: time.Duration(config.SessionTTLMinutes) * time.Minute,
		SurfaceFactory: func() gallery.Surface {
			return photographer.NewLightboxSurface(assetStore, time.Duration(config.AnimationSettleMs)*time.Millisecond)
		},
		ModalConfig: gallery.ModalControllerConfig{
			ContactTemplate:      "pages/fragments/overlays",
			ConfirmationTemplate: "pages/fragments/overlays",
		},
	})

	thumbnailCreator = cache.NewThumbnailCreatorService(cache.ThumbnailCreatorConfig{
		Assets:       assetStore,
		MaxWorkers:   config.MaxThumbnailWorker,
		MediaService: mediaService,
		ShutdownCtx:  shutdownCtx,
	})

	/*
	 * Setup controllers
	 */
	assetController = assetserve.NewAssetController(assetserve.AssetControllerConfig{
		Assets: assetStore,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		Assets:       assetStore,
		MediaService: mediaService,
		Renderer:     renderer,
	})

	mediaApiController = mediaapi.NewMediaApiController(mediaapi.MediaApiControllerConfig{
		LikeService:  likeService,
		MediaService: mediaService,
	})

	photographerController = photographer.NewPhotographerController(photographer.PhotographerControllerConfig{
		Assets:         assetStore,
		ContactService: contactService,
		LikeService:    likeService,
		MediaService:   mediaService,
		Renderer:       renderer,
		Sessions:       sessionManager,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	sessionMiddleware := newGallerySessionMiddleware()
	withSession := []mux.MiddlewareFunc{sessionMiddleware}

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: homeController.HomePage, Middlewares: withSession},
		{Path: "GET /photographer/{id}", HandlerFunc: photographerController.PhotographerPage, Middlewares: withSession},
		{Path: "POST /photographer/{id}/lightbox/open", HandlerFunc: photographerController.OpenLightbox, Middlewares: withSession},
		{Path: "POST /photographer/{id}/lightbox/next", HandlerFunc: photographerController.NextMedia, Middlewares: withSession},
		{Path: "POST /photographer/{id}/lightbox/previous", HandlerFunc: photographerController.PreviousMedia, Middlewares: withSession},
		{Path: "POST /photographer/{id}/lightbox/close", HandlerFunc: photographerController.CloseLightbox, Middlewares: withSession},
		{Path: "POST /photographer/{id}/sort", HandlerFunc: photographerController.SortGallery, Middlewares: withSession},
		{Path: "POST /photographer/{id}/media/{mediaid}/like", HandlerFunc: photographerController.LikeMedia, Middlewares: withSession},
		{Path: "POST /photographer/{id}/modal/contact/open", HandlerFunc: photographerController.OpenContactModal, Middlewares: withSession},
		{Path: "POST /photographer/{id}/modal/contact/close", HandlerFunc: photographerController.CloseContactModal, Middlewares: withSession},
		{Path: "POST /photographer/{id}/contact", HandlerFunc: photographerController.SubmitContact, Middlewares: withSession},
		{Path: "POST /photographer/{id}/modal/confirmation/close", HandlerFunc: photographerController.CloseConfirmation, Middlewares: withSession},
		{Path: "POST /photographer/{id}/key", HandlerFunc: photographerController.KeyPress, Middlewares: withSession},
		{Path: "GET /api/media", HandlerFunc: mediaApiController.GetMedia},
		{Path: "POST /api/update-likes", HandlerFunc: mediaApiController.UpdateLikes},
		{Path: "GET /assets/{key...}", HandlerFunc: assetController.ServeAsset},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the gallery session sweep
	 */
	sessionManager.StartSweepRoutine(5 * time.Minute)
	defer sessionManager.StopSweepRoutine()

	/*
	 * Start the thumbnail creator job
	 */
	setupThumbnailCreator(quit)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func setupLikeStore() services.LikeStorer {
	var (
		err error
	)

	if config.LikeStore != "sqlite" {
		return services.NewJSONFileLikeStore(services.JSONFileLikeStoreConfig{
			Path: config.DataFile,
		})
	}

	binds.Register("sqlite", binds.BindByDriver("sqlite3"))

	if db, err = sqlz.Connect("sqlite", config.DSN); err != nil {
		panic(err)
	}

	migrateDatabase()

	store := services.NewSQLLikeStore(services.SQLLikeStoreConfig{
		DB: db,
	})

	if err = store.Seed(mediaService.Document()); err != nil {
		panic(err)
	}

	return store
}

func setupAssetStore() assets.AssetStore {
	var (
		err error
	)

	if config.AssetSource != "s3" {
		return assets.NewLocalAssetStore(assets.LocalAssetStoreConfig{
			RootDir:   config.AssetDir,
			URLPrefix: "/assets",
		})
	}

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		panic(err)
	}

	return assets.NewS3AssetStore(assets.S3AssetStoreConfig{
		Bucket:   config.AwsBucket,
		S3Client: s3Client,
	})
}

func migrateDatabase() {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	if dirs, err = sqlMigrationsFs.ReadDir("sql-migrations"); err != nil {
		panic(err)
	}

	for _, d := range dirs {
		if d.IsDir() {
			continue
		}

		if strings.HasPrefix(d.Name(), "commit") {
			if b, err = fs.ReadFile(sqlMigrationsFs, filepath.Join("sql-migrations", d.Name())); err != nil {
				panic(err)
			}

			if err = runSqlScript(b); err != nil {
				if !isIgnorableError(err) {
					panic(err)
				}
			}
		}
	}
}

func runSqlScript(script []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}

func isIgnorableError(err error) bool {
	if strings.Contains(err.Error(), "duplicate column") {
		return true
	}

	return false
}

func setupThumbnailCreator(quit chan os.Signal) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		running := true

		runner := func() {
			defer func() {
				running = false
			}()

			thumbnailCreator.CreateThumbnails()
			slog.Info("thumbnail creator finished.")
		}

		runner()

		for {
			select {
			case <-quit:
				return

			case <-ticker.C:
				if running {
					slog.Info("thumbnail creator already running. skipping...")
					continue
				}

				runner()
			}
		}
	}()
}
