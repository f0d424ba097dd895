// Package seed fills a database with demo data by driving the application
// services, so seeded data obeys the same rules as real traffic.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/router"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

// DefaultPassword is set on every seeded account
const DefaultPassword = "password123"

// Options controls how much data is generated
type Options struct {
	Users          int
	Posts          int
	FollowsPerUser int
	MaxReactions   int
	MaxComments    int
	// Seed makes a run reproducible; zero picks one from the faker
	Seed int64
}

// Result counts what a run created
type Result struct {
	Users     int
	Follows   int
	Posts     int
	Reactions int
	Comments  int
}

// Seeder generates users, follows, posts, reactions and comments
type Seeder struct {
	svc   *router.Services
	log   *zap.Logger
	faker *gofakeit.Faker
	rng   *rand.Rand
	opts  Options
}

// NewSeeder creates a Seeder bound to svc
func NewSeeder(svc *router.Services, opts Options, log *zap.Logger) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = gofakeit.Int64()
	}
	return &Seeder{
		svc:   svc,
		log:   log,
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404: demo data only
		opts:  opts,
	}
}

// Run generates everything in dependency order
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	ids, err := s.seedUsers(ctx)
	if err != nil {
		return res, err
	}
	res.Users = len(ids)

	if res.Follows, err = s.seedFollows(ctx, ids); err != nil {
		return res, err
	}

	posts, err := s.seedPosts(ctx, ids)
	if err != nil {
		return res, err
	}
	res.Posts = len(posts)

	if res.Reactions, res.Comments, err = s.seedEngagement(ctx, ids, posts); err != nil {
		return res, err
	}

	s.log.Info("Seeding finished",
		zap.Int("users", res.Users),
		zap.Int("follows", res.Follows),
		zap.Int("posts", res.Posts),
		zap.Int("reactions", res.Reactions),
		zap.Int("comments", res.Comments),
	)
	return res, nil
}

func (s *Seeder) seedUsers(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		resp, err := s.svc.Auth.Signup(ctx, models.SignupRequest{
			Name:     s.faker.Name(),
			Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(s.faker.Username()), i),
			Password: DefaultPassword,
			Headline: fmt.Sprintf("%s at %s", s.faker.JobTitle(), s.faker.Company()),
		})
		if err != nil {
			return ids, fmt.Errorf("seed user %d: %w", i, err)
		}

		bio := s.faker.Sentence(12)
		location := s.faker.City()
		website := s.faker.URL()
		avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", resp.User.ID)
		_, err = s.svc.Auth.UpdateProfile(ctx, resp.User, models.UpdateProfileRequest{
			Bio:      &bio,
			Location: &location,
			Website:  &website,
			Avatar:   &avatar,
		})
		if err != nil {
			return ids, fmt.Errorf("seed profile %d: %w", i, err)
		}
		ids = append(ids, resp.User.ID)
	}
	return ids, nil
}

func (s *Seeder) seedFollows(ctx context.Context, ids []string) (int, error) {
	if len(ids) < 2 {
		return 0, nil
	}
	follows := 0
	for _, id := range ids {
		for _, target := range s.pick(ids, s.opts.FollowsPerUser) {
			if target == id {
				continue
			}
			actor, err := s.svc.Users.Get(ctx, id)
			if err != nil {
				return follows, err
			}
			if actor.IsFollowing(target) {
				continue
			}
			if _, _, err := s.svc.Follows.ToggleFollow(ctx, actor, target); err != nil {
				return follows, fmt.Errorf("seed follow %s -> %s: %w", id, target, err)
			}
			follows++
		}
	}
	return follows, nil
}

func (s *Seeder) seedPosts(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	posts := make([]string, 0, s.opts.Posts)
	for i := 0; i < s.opts.Posts; i++ {
		author, err := s.svc.Users.Get(ctx, ids[s.rng.Intn(len(ids))])
		if err != nil {
			return posts, err
		}

		req := models.CreatePostRequest{Content: s.postContent()}
		if s.rng.Intn(3) == 0 {
			req.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.faker.UUID())
		}
		post, err := s.svc.Posts.Create(ctx, author, req)
		if err != nil {
			return posts, fmt.Errorf("seed post %d: %w", i, err)
		}
		posts = append(posts, post.ID)
	}
	return posts, nil
}

func (s *Seeder) postContent() string {
	var b strings.Builder
	b.WriteString(s.faker.Paragraph(1, s.rng.Intn(3)+1, 12, " "))
	for n := s.rng.Intn(3); n > 0; n-- {
		b.WriteString(" #")
		b.WriteString(strings.ToLower(s.faker.Word()))
	}
	return b.String()
}

func (s *Seeder) seedEngagement(ctx context.Context, ids, posts []string) (int, int, error) {
	reactions, comments := 0, 0
	for _, postID := range posts {
		for _, id := range s.pick(ids, s.rng.Intn(s.opts.MaxReactions+1)) {
			actor, err := s.svc.Users.Get(ctx, id)
			if err != nil {
				return reactions, comments, err
			}
			kind := models.ReactionKinds[s.rng.Intn(len(models.ReactionKinds))]
			if _, err := s.svc.Reactions.Toggle(ctx, actor, postID, string(kind)); err != nil {
				return reactions, comments, fmt.Errorf("seed reaction on %s: %w", postID, err)
			}
			reactions++
		}

		for n := s.rng.Intn(s.opts.MaxComments + 1); n > 0; n-- {
			author, err := s.svc.Users.Get(ctx, ids[s.rng.Intn(len(ids))])
			if err != nil {
				return reactions, comments, err
			}
			if _, err := s.svc.Comments.Create(ctx, author, postID, models.CommentRequest{Content: s.faker.Sentence(10)}); err != nil {
				return reactions, comments, fmt.Errorf("seed comment on %s: %w", postID, err)
			}
			comments++
		}
	}
	return reactions, comments, nil
}

// pick returns up to n distinct ids in random order
func (s *Seeder) pick(ids []string, n int) []string {
	if n > len(ids) {
		n = len(ids)
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, i := range s.rng.Perm(len(ids))[:n] {
		out = append(out, ids[i])
	}
	return out
}
