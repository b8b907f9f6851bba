package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/ricotte-api/internal/dependencies/mocks"
	"github.com/mcoot/ricotte-api/internal/roster"
	"github.com/mcoot/ricotte-api/internal/services/account"
	"github.com/mcoot/ricotte-api/internal/storage/memory"
	"github.com/mcoot/ricotte-api/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates a seeded App with in-memory storage and mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		account.Config{BcryptCost: bcrypt.MinCost},
		roster.Default(),
		testutil.NopLogger(),
	)
	// memory storage never fails
	_ = app.seedRoster(context.Background())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
