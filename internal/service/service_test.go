package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/db"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/progress"
	"github.com/bienestar-app/bienestar/internal/repository"
)

// santiago is a fixed stand-in for the school timezone.
var santiago = time.FixedZone("CLT", -4*60*60)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	db    *sqlx.DB
	clock *clock

	users     repository.UserRepository
	profiles  repository.ProfileRepository
	entries   repository.GratitudeEntryRepository
	moods     repository.MoodRecordRepository
	progress  repository.ProgressRepository
	badgeRepo repository.BadgeRepository

	auth      *AuthService
	gratitude *GratitudeService
	progressS *ProgressService
	badges    *BadgeService
	moodS     *MoodService
	climate   *ClimateService
	patterns  *PatternService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	env := &testEnv{
		db:        database,
		clock:     &clock{t: time.Date(2025, 5, 12, 10, 0, 0, 0, santiago)},
		users:     repository.NewUserRepository(database),
		profiles:  repository.NewProfileRepository(database),
		entries:   repository.NewGratitudeEntryRepository(database),
		moods:     repository.NewMoodRecordRepository(database),
		progress:  repository.NewProgressRepository(database),
		badgeRepo: repository.NewBadgeRepository(database),
	}

	catalog := progress.DefaultCatalog()
	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Bienestar", true)

	env.auth = NewAuthService(env.users, env.profiles, email, "test-secret", time.Hour, true)
	env.progressS = NewProgressService(env.progress, env.entries, catalog, santiago, 3)
	env.progressS.now = env.clock.Now
	env.badges = NewBadgeService(env.badgeRepo, catalog)
	env.badges.now = env.clock.Now
	env.gratitude = NewGratitudeService(env.entries, env.users, env.profiles, env.progressS, env.badges, email, santiago)
	env.gratitude.now = env.clock.Now
	env.moodS = NewMoodService(env.moods)
	env.moodS.now = env.clock.Now
	env.climate = NewClimateService(env.profiles, env.moods, santiago, 15)
	env.patterns = NewPatternService(env.moods, env.entries, env.profiles, 3, santiago)
	env.patterns.now = env.clock.Now

	return env
}

// account creates a user with a profile directly, skipping bcrypt.
func (env *testEnv) account(t *testing.T, role model.Role, group string) *model.Profile {
	t.Helper()

	user := &model.User{ID: newID(), Email: newID() + "@colegio.cl", CreatedAt: env.clock.Now()}
	require.NoError(t, env.users.Create(user))

	profile := &model.Profile{UserID: user.ID, Name: "Persona", Role: role, GroupName: group}
	require.NoError(t, env.profiles.Create(profile))
	return profile
}

func newID() string {
	return uuid.New().String()
}
