// Package main seeds a Reelhouse data directory with demo channels, videos,
// posts and engagement so the feed and stats endpoints have something to show.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/.reelhouse
//
// Access tokens for every seeded channel are printed on completion.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/reelhouse/reelhouse-server/internal/auth"
	"github.com/reelhouse/reelhouse-server/internal/cache"
	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/search"
	"github.com/reelhouse/reelhouse-server/internal/service"
	"github.com/reelhouse/reelhouse-server/internal/store/sqlite"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

var (
	dataPath      = flag.String("data-path", filepath.Join(os.Getenv("HOME"), ".reelhouse"), "Reelhouse data directory")
	videosPerUser = flag.Int("videos", 4, "Videos to create per channel")
	tokenTTL      = flag.Duration("token-ttl", 24*time.Hour, "Lifetime of the printed access tokens")
)

var channels = []service.CreateUserRequest{
	{Username: "kitchenlab", Email: "kitchenlab@example.com", FullName: "Kitchen Lab", Avatar: "https://cdn.example.com/avatars/kitchenlab.png"},
	{Username: "gopherdev", Email: "gopherdev@example.com", FullName: "Gopher Dev", Avatar: "https://cdn.example.com/avatars/gopherdev.png"},
	{Username: "trailrunner", Email: "trailrunner@example.com", FullName: "Trail Runner", Avatar: "https://cdn.example.com/avatars/trailrunner.png"},
	{Username: "synthwave", Email: "synthwave@example.com", FullName: "Synth Wave", Avatar: "https://cdn.example.com/avatars/synthwave.png"},
}

var titles = []string{
	"Getting started",
	"Behind the scenes",
	"Ten tips for beginners",
	"Live session recap",
	"Answering your questions",
	"Gear review",
	"One year later",
	"Weekend project",
}

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	if err := os.MkdirAll(*dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	fmt.Printf("Seeding data directory: %s\n", *dataPath)

	st, err := sqlite.Open(filepath.Join(*dataPath, "reelhouse.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	index, _, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(*dataPath, "search"),
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	key, err := auth.LoadOrGenerateKey(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load token key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, *tokenTTL)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	v := validation.New()
	limits := view.Limits{Default: 6, Max: 50}
	users := service.NewUserService(st, v, logger)
	content := service.NewContentService(st, index, v, limits, logger)
	// The seeder runs without the view cache; a nil cache always misses.
	var noCache *cache.Cache
	edges := service.NewEdgeService(st, noCache, logger)
	history := service.NewChannelService(st, limits, logger)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))

	created := make([]*domain.User, 0, len(channels))
	for _, req := range channels {
		user, err := users.Create(ctx, req)
		if err != nil {
			log.Printf("Skipping %s: %v", req.Username, err)
			continue
		}
		created = append(created, user)
		fmt.Printf("  channel %s (%s)\n", user.Username, user.ID)
	}
	if len(created) == 0 {
		log.Fatal("No channels created. Has this directory been seeded already?")
	}

	var videos []*domain.Video
	for _, user := range created {
		for n := range *videosPerUser {
			title := titles[rng.IntN(len(titles))]
			video, err := content.CreateVideo(ctx, user.ID, service.CreateVideoRequest{
				Title:        fmt.Sprintf("%s: %s", user.FullName, title),
				Description:  fmt.Sprintf("Episode %d from %s.", n+1, user.FullName),
				VideoURL:     fmt.Sprintf("https://cdn.example.com/%s/%d.mp4", user.Username, n),
				ThumbnailURL: fmt.Sprintf("https://cdn.example.com/%s/%d.jpg", user.Username, n),
				Duration:     float64(60 + rng.IntN(1200)),
				// Roughly one in five uploads stays a draft.
				IsPublished: rng.IntN(5) != 0,
			})
			if err != nil {
				log.Printf("Failed to create video for %s: %v", user.Username, err)
				continue
			}
			videos = append(videos, video)
		}

		post, err := content.CreatePost(ctx, user.ID, service.CreatePostRequest{
			Content: fmt.Sprintf("New uploads from %s every week.", user.FullName),
		})
		if err != nil {
			log.Printf("Failed to create post for %s: %v", user.Username, err)
			continue
		}

		for _, fan := range created {
			if fan.ID == user.ID || rng.IntN(2) == 0 {
				continue
			}
			if _, err := edges.ToggleLike(ctx, fan.ID, domain.PostRef(post.ID)); err != nil {
				log.Printf("Failed to like post: %v", err)
			}
		}
	}

	var likes, subscriptions, plays int
	for _, fan := range created {
		for _, channel := range created {
			if channel.ID == fan.ID || rng.IntN(3) == 0 {
				continue
			}
			if _, err := edges.ToggleSubscription(ctx, fan.ID, channel.ID); err != nil {
				log.Printf("Failed to subscribe: %v", err)
				continue
			}
			subscriptions++
		}

		for _, video := range videos {
			if !video.IsPublished || video.OwnerID == fan.ID {
				continue
			}
			if rng.IntN(2) == 0 {
				if _, err := edges.ToggleLike(ctx, fan.ID, domain.VideoRef(video.ID)); err == nil {
					likes++
				}
			}
			if rng.IntN(3) == 0 {
				if err := history.RecordPlayback(ctx, fan.ID, video.ID); err == nil {
					plays++
				}
			}
		}
	}

	fmt.Printf("\nCreated %d videos, %d subscriptions, %d video likes, %d plays\n",
		len(videos), subscriptions, likes, plays)

	fmt.Println("\nAccess tokens:")
	for _, user := range created {
		token, err := tokens.GenerateAccessToken(user)
		if err != nil {
			log.Printf("Failed to issue token for %s: %v", user.Username, err)
			continue
		}
		fmt.Printf("  %-12s %s\n", user.Username, token)
	}
}
