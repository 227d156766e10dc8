package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/aws/aws-sdk-go/aws/session"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"google.golang.org/api/option"

	"github.com/Hyperion302/swish/internal/app"
	"github.com/Hyperion302/swish/internal/domain/repository"
	"github.com/Hyperion302/swish/internal/infrastructure/auth"
	"github.com/Hyperion302/swish/internal/infrastructure/persistence"
	"github.com/Hyperion302/swish/internal/infrastructure/transcode"
)

var (
	addr = flag.String("addr", env("ADDR", ":4443"), "web server address")
	cert = flag.String("cert", env("CERT_FILE", ""), "path of TLS certificate file")
	key  = flag.String("key", env("CERT_KEY", ""), "path of TLS private key file")
)

func main() {
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfig()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	fb, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		log.Fatalf("failed to initialize the firebase app: %v", err)
	}
	client, err := fb.Auth(ctx)
	if err != nil {
		log.Fatalf("failed to create the auth client: %v", err)
	}
	authenticator := auth.NewAuthenticator(auth.NewFirebaseVerifier(client))

	channels, videos := newRepositories(ctx, cfg, opts)
	controller := app.NewController(
		channels,
		videos,
		newUploader(ctx, cfg, opts),
		transcode.NewMuxTranscoder(cfg.MuxTokenId, cfg.MuxTokenSecret),
		cfg.MuxWebhookSecret,
	)

	r := mux.NewRouter()
	controller.SetupRoutes(r)

	srv := &http.Server{
		Handler:      authenticator.Middleware(r),
		Addr:         *addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("the server started on port: %s\n", *addr)

	if *cert != "" && *key != "" {
		log.Fatal(srv.ListenAndServeTLS(*cert, *key))
	} else {
		log.Fatal(srv.ListenAndServe())
	}
}

// Build the record repositories for the configured database backend.
func newRepositories(ctx context.Context, cfg config, opts []option.ClientOption) (repository.ChannelRepository, repository.VideoRepository) {
	switch cfg.DBBackend {
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			log.Fatalf("failed to create the firestore client: %v", err)
		}
		return persistence.NewChannelRepository(client), persistence.NewVideoRepository(client)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to open the database: %v", err)
		}
		if err := persistence.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("failed to ensure the database schema: %v", err)
		}
		return persistence.NewSQLChannelRepository(db), persistence.NewSQLVideoRepository(db)
	default:
		log.Fatalf("unknown database backend %q", cfg.DBBackend)
		return nil, nil
	}
}

// Build the object storage backend holding the uploaded video sources.
func newUploader(ctx context.Context, cfg config, opts []option.ClientOption) repository.Uploader {
	switch cfg.StorageBackend {
	case "gcs":
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			log.Fatalf("failed to create the storage client: %v", err)
		}
		return persistence.NewUploader(client, cfg.Bucket)
	case "s3":
		return persistence.NewS3Uploader(session.Must(session.NewSession()), cfg.Bucket)
	default:
		log.Fatalf("unknown storage backend %q", cfg.StorageBackend)
		return nil
	}
}
