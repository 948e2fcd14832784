package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestUserMissing(t *testing.T) {
	if missing, err := userMissing(nil); missing || err != nil {
		t.Fatalf("existing user: got (%v, %v), want (false, nil)", missing, err)
	}

	if missing, err := userMissing(pgx.ErrNoRows); !missing || err != nil {
		t.Fatalf("no rows: got (%v, %v), want (true, nil)", missing, err)
	}

	wrapped := fmt.Errorf("query: %w", pgx.ErrNoRows)
	if missing, err := userMissing(wrapped); !missing || err != nil {
		t.Fatalf("wrapped no rows: got (%v, %v), want (true, nil)", missing, err)
	}

	boom := errors.New("connection reset")
	if missing, err := userMissing(boom); missing || !errors.Is(err, boom) {
		t.Fatalf("query failure must propagate, got (%v, %v)", missing, err)
	}
}
