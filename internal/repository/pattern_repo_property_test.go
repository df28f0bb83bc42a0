package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/augustawind/conway-web/internal/db"
	"github.com/augustawind/conway-web/internal/model"
)

// generateName generates a unique pattern name for testing.
func generateName() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// TestPatternPersistenceProperty checks that any stored pattern can be
// retrieved with its body intact and disappears after deletion.
func TestPatternPersistenceProperty(t *testing.T) {
	testDB, err := db.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer testDB.Close()

	repo := NewPatternRepository(testDB)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Pattern bodies are arbitrary non-empty text, newlines included.
	bodyGen := gen.AnyString().SuchThat(func(s string) bool {
		return len(s) > 0
	})

	properties.Property("stored patterns round-trip through the database", prop.ForAll(
		func(body string) bool {
			name := generateName()
			now := time.Now()

			pattern := &model.Pattern{
				Name:      name,
				Body:      body,
				Source:    model.PatternSourceUser,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := repo.Create(ctx, pattern); err != nil {
				t.Logf("failed to create pattern: %v", err)
				return false
			}

			retrieved, err := repo.GetByName(ctx, name)
			if err != nil {
				t.Logf("failed to retrieve pattern: %v", err)
				return false
			}
			if retrieved.Name != name || retrieved.Body != body || retrieved.Source != model.PatternSourceUser {
				t.Logf("retrieved pattern does not match stored pattern")
				return false
			}

			if err := repo.Delete(ctx, name); err != nil {
				t.Logf("failed to delete pattern: %v", err)
				return false
			}
			if _, err := repo.GetByName(ctx, name); !errors.Is(err, model.ErrPatternNotFound) {
				t.Logf("deleted pattern still retrievable")
				return false
			}

			return true
		},
		bodyGen,
	))

	properties.TestingRun(t)
}

// TestSeedSamples tests that seeding is idempotent and never clobbers rows.
func TestSeedSamples(t *testing.T) {
	testDB, err := db.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer testDB.Close()

	repo := NewPatternRepository(testDB)
	ctx := context.Background()

	if err := repo.SeedSamples(ctx); err != nil {
		t.Fatalf("SeedSamples failed: %v", err)
	}

	glider, err := repo.GetByName(ctx, "glider")
	if err != nil {
		t.Fatalf("glider not seeded: %v", err)
	}
	if glider.Source != model.PatternSourceSample {
		t.Errorf("glider source = %q, want sample", glider.Source)
	}

	// Re-seeding must not overwrite.
	if err := repo.Delete(ctx, "toad"); err != nil {
		t.Fatalf("failed to delete toad: %v", err)
	}
	custom := &model.Pattern{
		Name:      "toad",
		Body:      "custom",
		Source:    model.PatternSourceUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Create(ctx, custom); err != nil {
		t.Fatalf("failed to create custom toad: %v", err)
	}
	if err := repo.SeedSamples(ctx); err != nil {
		t.Fatalf("re-seed failed: %v", err)
	}
	toad, err := repo.GetByName(ctx, "toad")
	if err != nil {
		t.Fatalf("toad missing after re-seed: %v", err)
	}
	if toad.Body != "custom" {
		t.Errorf("re-seed clobbered user pattern: %q", toad.Body)
	}

	patterns, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(patterns) != len(SamplePatterns) {
		t.Errorf("listed %d patterns, want %d", len(patterns), len(SamplePatterns))
	}
}

// TestCreateDuplicate tests the duplicate-name error.
func TestCreateDuplicate(t *testing.T) {
	testDB, err := db.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer testDB.Close()

	repo := NewPatternRepository(testDB)
	ctx := context.Background()

	pattern := &model.Pattern{
		Name:      "dup",
		Body:      "x",
		Source:    model.PatternSourceUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Create(ctx, pattern); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := repo.Create(ctx, pattern); !errors.Is(err, model.ErrPatternExists) {
		t.Errorf("expected ErrPatternExists, got %v", err)
	}
}
