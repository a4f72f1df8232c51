package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kengraphic/tujengane-sacco/internal/cache"
	"github.com/kengraphic/tujengane-sacco/internal/repository"
	"github.com/kengraphic/tujengane-sacco/internal/service"
	httpx "github.com/kengraphic/tujengane-sacco/internal/transport/http"
	"github.com/kengraphic/tujengane-sacco/pkg/config"
	"github.com/kengraphic/tujengane-sacco/pkg/db"
	"github.com/kengraphic/tujengane-sacco/pkg/mq"
	"github.com/kengraphic/tujengane-sacco/pkg/obs"
	"github.com/kengraphic/tujengane-sacco/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	shutdownTracer := obs.InitTracer("tujengane-portal")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepo(gdb)
	profiles := repository.NewProfileRepo(gdb)
	roles := repository.NewRoleRepo(gdb)
	contributions := repository.NewContributionRepo(gdb)
	for _, m := range []interface{ Migrate() error }{users, profiles, roles, contributions} {
		if err := m.Migrate(); err != nil {
			log.Fatal(err)
		}
	}

	rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	revoke := cache.NewRevocationStore(rdb)
	verify := cache.NewVerificationStore(rdb, time.Duration(cfg.VerifyTTLHr)*time.Hour)

	avatars, err := storage.NewAvatarStore(context.Background(), storage.AvatarStoreConfig{
		Bucket:    cfg.AvatarBucket,
		Region:    cfg.AvatarRegion,
		Endpoint:  cfg.AvatarEndpoint,
		PublicURL: cfg.AvatarPublicURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.PortalExchange)
	if err != nil {
		log.Fatal(err)
	}
	defer pub.Close()

	authSvc := service.NewAuthSvc(service.AuthDeps{
		Users:      users,
		Profiles:   profiles,
		Roles:      roles,
		Avatars:    avatars,
		Verify:     verify,
		Revoke:     revoke,
		Pub:        pub,
		JWTSecret:  cfg.JWTSecret,
		AccessTTL:  time.Duration(cfg.JWTExpireMin) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshExpireHr) * time.Hour,
	})
	membershipSvc := service.NewMembershipSvc(profiles, roles, pub)
	contributionSvc := service.NewContributionSvc(profiles, contributions, pub, cfg.MinContribution)

	// repair any approved-without-grant drift left by a failed review
	if n, err := membershipSvc.ReconcileRoleGrants(context.Background()); err != nil {
		log.Printf("[portal] reconcile role grants: %v", err)
	} else if n > 0 {
		log.Printf("[portal] reconciled %d missing member grants", n)
	}

	r := httpx.NewRouter(httpx.RouterDeps{
		JWTSecret:     cfg.JWTSecret,
		TreasuryPhone: cfg.TreasuryPhone,
		Auth:          authSvc,
		Membership:    membershipSvc,
		Contributions: contributionSvc,
		Revoked:       revoke,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("[portal] http on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[portal] shutdown: %v", err)
	}
}
